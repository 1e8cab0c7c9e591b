package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// runConfigSchemaJSON and projectRecipeSchemaJSON constrain the YAML
// documents users may hand-author for a RunConfig or ProjectRecipe
// (e.g. a project list loaded from a file rather than compiled in), so a
// malformed document is rejected with a precise error before it reaches the
// Catalog rather than surfacing later as a nil-pointer deep in a build step.
const runConfigSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "num_build_jobs"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "num_build_jobs": {"type": "integer", "minimum": 1},
    "linker_flags": {"type": "array", "items": {"type": "string"}},
    "append_linker_flags": {"type": "boolean"},
    "architecture": {"type": "string"},
    "compile_options": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "compiler_path": {"type": "string"},
          "compiler_flags": {"type": "array", "items": {"type": "string"}},
          "append_compiler_flags": {"type": "boolean"}
        }
      }
    }
  }
}`

const projectRecipeSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "build_system", "git_remote", "source_languages"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "build_system": {"type": "string", "minLength": 1},
    "git_remote": {"type": "string", "minLength": 1},
    "git_head": {"type": "string"},
    "supports_out_of_tree": {"type": "boolean"},
    "source_languages": {
      "type": "array",
      "items": {"type": "string", "enum": ["c", "c++"]},
      "minItems": 1
    },
    "apt_deps": {"type": "array", "items": {"type": "string"}},
    "no_cc_wrapper": {"type": "boolean"},
    "extra_cflags": {"type": "array", "items": {"type": "string"}},
    "extra_cxxflags": {"type": "array", "items": {"type": "string"}},
    "extra_linker_flags": {"type": "array", "items": {"type": "string"}}
  }
}`

func compileSchema(name, schemaJSON string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, bytes.NewReader([]byte(schemaJSON))); err != nil {
		panic(fmt.Sprintf("catalog: invalid embedded schema %s: %v", name, err))
	}
	s, err := c.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid embedded schema %s: %v", name, err))
	}
	return s
}

var (
	runConfigSchema     = compileSchema("runconfig.json", runConfigSchemaJSON)
	projectRecipeSchema = compileSchema("projectrecipe.json", projectRecipeSchemaJSON)
)

// ValidateRunConfigFile validates a user-authored RunConfig YAML document
// against the schema before it is loaded into a recipe.RunConfig.
func ValidateRunConfigFile(path string) error {
	return validateYAMLFile(path, runConfigSchema)
}

// ValidateProjectRecipeFile validates a user-authored ProjectRecipe YAML
// document (the declarative fields only — BuildStepOptions callbacks are
// supplied in code, not YAML).
func ValidateProjectRecipeFile(path string) error {
	return validateYAMLFile(path, projectRecipeSchema)
}

func validateYAMLFile(path string, schema *jsonschema.Schema) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	// jsonschema validates against json-shaped values (map[string]interface{}
	// with string keys); round-trip through JSON to normalize yaml.v3's
	// map[string]interface{} (already string-keyed for mapping nodes, but
	// nested numeric types differ from encoding/json's).
	normalized, err := jsonRoundTrip(doc)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", path, err)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func jsonRoundTrip(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
