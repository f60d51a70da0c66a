// Package schema generates the JSON Schema of the manifest format and checks
// decoded manifest documents against it before they are mapped onto Go types.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goran-ethernal/SubgraphValidator/pkg/manifest"
)

// URL is the identifier of the generated schema.
const URL = "https://github.com/goran-ethernal/SubgraphValidator/manifest.schema.json"

var (
	compiled    *jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
	printer     = message.NewPrinter(language.English)
)

// Generate reflects the manifest types into a JSON Schema document.
func Generate() *invopop.Schema {
	r := &invopop.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
		Mapper:                    mapType,
	}

	s := r.Reflect(&manifest.Manifest{})
	s.ID = invopop.ID(URL)
	s.Title = "Subgraph manifest"

	// Explicit nulls mean "absent", and filter kinds are judged by the validator.
	allowNull(s, "schema")
	allowNull(s.Definitions["Source"], "address")
	allowNull(s.Definitions["BlockHandler"], "filter")
	optional(s.Definitions["BlockHandlerFilter"], "kind")

	return s
}

// allowNull lets a property be null in addition to its reflected schema.
func allowNull(s *invopop.Schema, property string) {
	if s == nil || s.Properties == nil {
		return
	}
	prop, ok := s.Properties.Get(property)
	if !ok {
		return
	}
	s.Properties.Set(property, &invopop.Schema{
		AnyOf: []*invopop.Schema{prop, {Type: "null"}},
	})
}

// optional drops a property from the required list.
func optional(s *invopop.Schema, property string) {
	if s == nil {
		return
	}
	s.Required = slices.DeleteFunc(s.Required, func(name string) bool {
		return name == property
	})
}

// GenerateJSON returns the indented JSON encoding of the generated schema.
func GenerateJSON() ([]byte, error) {
	return json.MarshalIndent(Generate(), "", "  ")
}

func mapType(t reflect.Type) *invopop.Schema {
	if t == reflect.TypeOf(common.Address{}) {
		return &invopop.Schema{
			Type:        "string",
			Pattern:     "^0x[0-9a-fA-F]{40}$",
			Description: "Contract address",
		}
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := GenerateJSON()
		if err != nil {
			compileErr = fmt.Errorf("encoding schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(URL, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}

		compiled, compileErr = c.Compile(URL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Issue is a single schema violation.
type Issue struct {
	Path    string `json:"path"`
	Keyword string `json:"keyword"`
	Message string `json:"message"`
}

// SchemaError is returned by Check when the document does not match the schema.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		path := issue.Path
		if path == "" {
			path = "/"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", path, issue.Message))
	}
	return "manifest does not match schema: " + strings.Join(parts, "; ")
}

// Check validates a decoded document (as produced by yaml, json or toml decoding into any).
// A *SchemaError is returned for schema violations; other errors indicate the document could not be checked.
func Check(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting document to JSON: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("preparing document for validation: %w", err)
	}

	err = s.Validate(inst)
	if err == nil {
		return nil
	}

	verr, ok := err.(*jsonschema.ValidationError) //nolint:errorlint
	if !ok {
		return fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &SchemaError{Issues: collectIssues(verr)}
}

func collectIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	walkIssues(ve, &issues)

	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}

	seen := make(map[string]struct{}, len(issues))
	result := issues[:0]
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, issue)
	}
	return result
}

// walkIssues collects the leaf errors of the validation error tree.
func walkIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			walkIssues(cause, issues)
		}
		return
	}

	if ve.ErrorKind == nil {
		return
	}

	kwPath := ve.ErrorKind.KeywordPath()
	if len(kwPath) == 0 {
		return
	}
	keyword := kwPath[len(kwPath)-1]
	if keyword == "$ref" || keyword == "allOf" || keyword == "oneOf" {
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	*issues = append(*issues, Issue{
		Path:    path,
		Keyword: keyword,
		Message: ve.ErrorKind.LocalizedString(printer),
	})
}
