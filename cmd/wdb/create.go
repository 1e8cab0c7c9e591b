package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lasserre/wildebeest/internal/catalog"
	"github.com/lasserre/wildebeest/internal/experiment"
	"github.com/lasserre/wildebeest/internal/stepio"
)

func cmdCreate(cat *catalog.Catalog, args []string) {
	var expName, folder, listName, recipeName string
	var params = stepio.Params{}

	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-l":
			i++
			if i >= len(args) {
				fail("-l requires a value")
			}
			listName = args[i]
		case "-r":
			i++
			if i >= len(args) {
				fail("-r requires a value")
			}
			recipeName = args[i]
		case "-p":
			i++
			if i >= len(args) {
				fail("-p requires a value in the form k=v")
			}
			kv := strings.SplitN(args[i], "=", 2)
			if len(kv) != 2 {
				fail("-p %q is invalid; expected k=v", args[i])
			}
			params[kv[0]] = kv[1]
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) < 1 {
		usage()
		os.Exit(1)
	}
	expName = positional[0]
	if len(positional) > 1 {
		folder = positional[1]
	}

	factory, err := experiment.LookupFactory(cat, expName)
	if err != nil {
		fail("%v", err)
	}
	design := factory(cat)

	if listName != "" {
		recipes, err := cat.ProjectList(listName)
		if err != nil {
			fail("%v", err)
		}
		design.Recipes = recipes
	} else if recipeName != "" {
		r, err := cat.Recipe(recipeName)
		if err != nil {
			fail("%v", err)
		}
		design.Recipes = append(design.Recipes[:0], r)
	}

	if folder == "" {
		folder = defaultFolderFor(expName)
	}
	if experiment.IsExpFolder(folder) {
		fail("experiment folder %s already exists", folder)
	}

	e := experiment.New(expName, design.Algorithm, design.RunConfigs, design.Recipes, folder, params)
	if err := e.Save(); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Created experiment %q at %s\n", expName, e.ExpFolder)
}

func defaultFolderFor(expName string) string {
	wd, err := os.Getwd()
	if err != nil {
		return expName + ".exp"
	}
	return wd + "/" + expName + ".exp"
}
