package run

import "path/filepath"

// ExpRelPaths collects the experiment-folder-relative layout wildebeest
// writes to, mirroring original_source/wildebeest/experimentpaths.py.
var ExpRelPaths = struct {
	Wdb        string
	ExpYaml    string
	Runstates  string
	Source     string
	Build      string
	Rundata    string
	Expdata    string
}{
	Wdb:       ".wildebeest",
	ExpYaml:   filepath.Join(".wildebeest", "exp.yaml"),
	Runstates: filepath.Join(".wildebeest", "runstates"),
	Source:    "source",
	Build:     "build",
	Rundata:   "rundata",
	Expdata:   "expdata",
}
