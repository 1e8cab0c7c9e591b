package jobrunner

import "testing"

func TestContainerNameIsDeterministic(t *testing.T) {
	a := ContainerName("wl1", 3, "hello", "debug")
	b := ContainerName("wl1", 3, "hello", "debug")
	if a != b {
		t.Fatalf("ContainerName not deterministic: %q != %q", a, b)
	}
}

func TestContainerNameVariesWithEachComponent(t *testing.T) {
	base := ContainerName("wl1", 3, "hello", "debug")
	variants := []string{
		ContainerName("wl2", 3, "hello", "debug"),
		ContainerName("wl1", 4, "hello", "debug"),
		ContainerName("wl1", 3, "world", "debug"),
		ContainerName("wl1", 3, "hello", "release"),
	}
	for _, v := range variants {
		if v == base {
			t.Fatalf("expected a distinct name, got collision %q", v)
		}
	}
}

func TestContainerNameHasExpectedPrefixAndLength(t *testing.T) {
	name := ContainerName("wl1", 3, "hello", "debug")
	if len(name) != len("wdb-")+16 {
		t.Fatalf("ContainerName = %q, unexpected length %d", name, len(name))
	}
	if name[:4] != "wdb-" {
		t.Fatalf("ContainerName = %q, want wdb- prefix", name)
	}
}
