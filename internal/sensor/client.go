// Package sensor reads CPU temperatures from the LibreHardwareMonitor web
// endpoint on hosts where the OS exposes no usable sensors.
package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	// DefaultURL is where LibreHardwareMonitor serves its sensor tree.
	DefaultURL = "http://localhost:8085/data.json"
	// DefaultTimeout bounds one fetch.
	DefaultTimeout = 3 * time.Second

	cpuImage          = "images_icon/cpu.png"
	temperaturesGroup = "Temperatures"
)

// Vendor selects the label scheme used inside the CPU temperatures group.
type Vendor string

const (
	VendorIntel Vendor = "intel"
	VendorAMD   Vendor = "amd"
)

// Node is one entry of the hardware tree.
type Node struct {
	Text     string `json:"Text"`
	Value    string `json:"Value"`
	ImageURL string `json:"ImageURL"`
	Children []Node `json:"Children"`
}

// Result holds the temperatures recovered from one fetch. An empty Result
// means the endpoint was unavailable this cycle.
type Result struct {
	Cores   []float64
	Average *float64
	Package *float64
}

// Empty reports whether no temperature was recovered.
func (r Result) Empty() bool {
	return len(r.Cores) == 0 && r.Package == nil
}

// Client fetches the sensor tree over HTTP.
type Client struct {
	URL  string
	http *http.Client
}

// NewClient returns a Client for url. Empty values fall back to DefaultURL
// and DefaultTimeout.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		URL:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the tree and extracts CPU temperatures for vendor. Any
// transport, status or decode failure yields an empty Result; the service
// is usually still starting and the next cycle retries.
func (c *Client) Fetch(ctx context.Context, vendor Vendor) Result {
	root, err := c.tree(ctx)
	if err != nil {
		log.Printf("sensor: endpoint %s unavailable: %v", c.URL, err)
		return Result{}
	}
	return Extract(root, vendor)
}

func (c *Client) tree(ctx context.Context) (*Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var root Node
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode sensor tree: %w", err)
	}
	return &root, nil
}

// Extract walks root for the CPU temperatures group and applies the label
// scheme of vendor. Intel reports one entry per core; AMD reports a single
// CCD aggregate.
func Extract(root *Node, vendor Vendor) Result {
	if root == nil || len(root.Children) == 0 {
		return Result{}
	}
	scheme := schemeFor(vendor)

	var res Result
	for _, hw := range root.Children[0].Children {
		if hw.ImageURL != cpuImage {
			continue
		}
		for _, group := range hw.Children {
			if group.Text != temperaturesGroup {
				continue
			}
			next := 1
			for _, s := range group.Children {
				if scheme.isCore(s.Text, next) {
					if v, ok := parseCelsius(s.Value); ok {
						res.Cores = append(res.Cores, v)
						next++
					}
				}
				if s.Text == scheme.pkg {
					if v, ok := parseCelsius(s.Value); ok {
						res.Package = &v
					}
				}
			}
		}
	}

	if len(res.Cores) > 0 {
		avg := mean(res.Cores)
		res.Average = &avg
	}
	return res
}

type labelScheme struct {
	isCore func(label string, next int) bool
	pkg    string
}

func schemeFor(vendor Vendor) labelScheme {
	if vendor == VendorAMD {
		return labelScheme{
			isCore: func(label string, _ int) bool { return label == "CCD1 (Tdie)" },
			pkg:    "Core (Tctl/Tdie)",
		}
	}
	return labelScheme{
		isCore: func(label string, next int) bool { return label == fmt.Sprintf("CPU Core #%d", next) },
		pkg:    "CPU Package",
	}
}

// parseCelsius converts values such as "45.0 °C".
func parseCelsius(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "°C"))
	if s == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func mean(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return math.Round(sum/float64(len(vs))*100) / 100
}
