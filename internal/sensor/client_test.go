package sensor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func tree(cpuSensors ...Node) Node {
	return Node{
		Text: "Sensor",
		Children: []Node{{
			Text: "DESKTOP-01",
			Children: []Node{
				{Text: "ASUS PRIME B450", ImageURL: "images_icon/mainboard.png"},
				{
					Text:     "CPU",
					ImageURL: cpuImage,
					Children: []Node{
						{Text: "Clocks", Children: []Node{{Text: "CPU Core #1", Value: "3600.0 MHz"}}},
						{Text: temperaturesGroup, Children: cpuSensors},
					},
				},
			},
		}},
	}
}

func serve(t *testing.T, root Node) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.json" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(root)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchIntel(t *testing.T) {
	srv := serve(t, tree(
		Node{Text: "CPU Core #1", Value: "41.0 °C"},
		Node{Text: "CPU Core #2", Value: "44.0 °C"},
		Node{Text: "CPU Package", Value: "47.5 °C"},
	))

	res := NewClient(srv.URL+"/data.json", time.Second).Fetch(context.Background(), VendorIntel)

	if len(res.Cores) != 2 {
		t.Fatalf("len(Cores) = %d, want 2", len(res.Cores))
	}
	if res.Average == nil || *res.Average != 42.5 {
		t.Errorf("Average = %v, want 42.5", res.Average)
	}
	if res.Package == nil || *res.Package != 47.5 {
		t.Errorf("Package = %v, want 47.5", res.Package)
	}
}

func TestFetchAMD(t *testing.T) {
	srv := serve(t, tree(
		Node{Text: "Core (Tctl/Tdie)", Value: "55.3 °C"},
		Node{Text: "CCD1 (Tdie)", Value: "52.1 °C"},
	))

	res := NewClient(srv.URL+"/data.json", time.Second).Fetch(context.Background(), VendorAMD)

	if len(res.Cores) != 1 || res.Cores[0] != 52.1 {
		t.Fatalf("Cores = %v, want [52.1]", res.Cores)
	}
	if res.Package == nil || *res.Package != 55.3 {
		t.Errorf("Package = %v, want 55.3", res.Package)
	}
}

func TestExtractCoresMustBeSequential(t *testing.T) {
	root := tree(
		Node{Text: "CPU Core #1", Value: "40.0 °C"},
		Node{Text: "CPU Core #3", Value: "90.0 °C"},
		Node{Text: "CPU Core #2", Value: "42.0 °C"},
	)
	res := Extract(&root, VendorIntel)
	if len(res.Cores) != 2 || res.Cores[1] != 42.0 {
		t.Errorf("Cores = %v, want [40 42]", res.Cores)
	}
	if res.Package != nil {
		t.Errorf("Package = %v, want nil", *res.Package)
	}
}

func TestFetchUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"Children": [`))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}},
		{"empty tree", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			res := NewClient(srv.URL, 100*time.Millisecond).Fetch(context.Background(), VendorIntel)
			if !res.Empty() || res.Average != nil {
				t.Errorf("expected empty result, got %+v", res)
			}
		})
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := NewClient(url, time.Second).Fetch(context.Background(), VendorIntel)
	if !res.Empty() {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestParseCelsius(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"45.0 °C", 45.0, true},
		{" 38 °C ", 38, true},
		{"52.25", 52.25, true},
		{"°C", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseCelsius(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseCelsius(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
