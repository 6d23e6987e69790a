package storage

import (
	"context"
	"errors"
	"testing"
)

const lsblkOutput = `{
   "blockdevices": [
      {"name":"loop0", "model":null, "mountpoints":["/snap/core/1"], "type":"loop", "fstype":"squashfs"},
      {"name":"sda", "model":"Samsung SSD 870 ", "mountpoints":[null], "type":"disk", "fstype":null,
         "children": [
            {"name":"sda1", "model":null, "mountpoints":["/data"], "type":"part", "fstype":"ext4"},
            {"name":"sda2", "model":null, "mountpoints":["[SWAP]"], "type":"part", "fstype":"swap"}
         ]
      },
      {"name":"nvme0n1", "model":"WDC WDS500G2B0C", "mountpoints":[null], "type":"disk", "fstype":null,
         "children": [
            {"name":"nvme0n1p1", "model":null, "mountpoints":["/boot/efi"], "type":"part", "fstype":"vfat"},
            {"name":"nvme0n1p2", "model":null, "mountpoints":[null], "type":"part", "fstype":"LVM2_member",
               "children": [
                  {"name":"vg-root", "model":null, "mountpoints":["/", "/var/snap"], "type":"lvm", "fstype":"btrfs"}
               ]
            }
         ]
      },
      {"name":"mmcblk0", "model":null, "mountpoints":[null], "type":"disk", "fstype":null},
      {"name":"sr0", "model":"DVD-ROM", "mountpoints":[null], "type":"rom", "fstype":null}
   ]
}`

func TestDevicePath(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"nvme0n1", "/dev/nvme0"},
		{"nvme1n2", "/dev/nvme1"},
		{"nvme0n1p3", "/dev/nvme0"},
		{"sda", "/dev/sda"},
		{"sdb2", "/dev/sdb"},
		{"mmcblk0", "/dev/mmcblk0"},
		{"mmcblk0p1", "/dev/mmcblk0"},
		{"/dev/vda", "/dev/vda"},
		{"zram0", "/dev/zram0"},
	}
	for _, tt := range tests {
		if got := DevicePath(tt.name); got != tt.want {
			t.Errorf("DevicePath(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestLsblkDisks(t *testing.T) {
	var gotArgs []string
	l := &Lsblk{Path: "lsblk", run: func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return []byte(lsblkOutput), nil
	}}

	disks, err := l.Disks(context.Background())
	if err != nil {
		t.Fatalf("Disks: %v", err)
	}
	if len(gotArgs) != 4 || gotArgs[1] != "-J" || gotArgs[3] != "NAME,MODEL,MOUNTPOINTS,TYPE,FSTYPE" {
		t.Errorf("unexpected invocation %v", gotArgs)
	}
	if len(disks) != 3 {
		t.Fatalf("got %d disks, want 3: %+v", len(disks), disks)
	}

	sda := disks[0]
	if sda.Model != "Samsung SSD 870" || sda.Device != "/dev/sda" {
		t.Errorf("sda = %+v", sda)
	}
	if len(sda.Partitions) != 1 || sda.Partitions[0] != (Partition{Path: "/data", Fstype: "ext4"}) {
		t.Errorf("sda partitions = %+v", sda.Partitions)
	}

	nvme := disks[1]
	if nvme.Device != "/dev/nvme0" {
		t.Errorf("nvme device = %q", nvme.Device)
	}
	wantParts := []Partition{
		{Path: "/boot/efi", Fstype: "vfat"},
		{Path: "/", Fstype: "btrfs"},
		{Path: "/var/snap", Fstype: "btrfs"},
	}
	if len(nvme.Partitions) != len(wantParts) {
		t.Fatalf("nvme partitions = %+v", nvme.Partitions)
	}
	for i, p := range wantParts {
		if nvme.Partitions[i] != p {
			t.Errorf("nvme partition %d = %+v, want %+v", i, nvme.Partitions[i], p)
		}
	}

	mmc := disks[2]
	if mmc.Device != "/dev/mmcblk0" || mmc.Model != "" || len(mmc.Partitions) != 0 {
		t.Errorf("mmc = %+v", mmc)
	}
}

func TestLsblkFailures(t *testing.T) {
	tests := []struct {
		name string
		out  []byte
		err  error
	}{
		{"missing binary", nil, errors.New(`exec: "lsblk": executable file not found in $PATH`)},
		{"malformed json", []byte(`{"blockdevices": [`), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Lsblk{Path: "lsblk", run: func(context.Context, string, ...string) ([]byte, error) {
				return tt.out, tt.err
			}}
			_, err := l.Disks(context.Background())
			if !errors.Is(err, ErrListing) {
				t.Fatalf("err = %v, want ErrListing", err)
			}
		})
	}
}
