// Package swaggerkit serves an OpenAPI 3 document built from the routes
// modules describe, plus the Swagger UI over it
package swaggerkit

import (
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Op describes one route. Path is relative to the owning module until
// the module prefixes it
type Op struct {
	Method  string
	Path    string
	Summary string
	Tag     string
	// Secured routes sit behind the admin bearer token
	Secured bool
	// Body routes take a JSON request body
	Body bool
	// Status overrides the success status implied by Method
	Status int
}

// Info heads the document
type Info struct {
	Title       string
	Version     string
	Description string
	// Server is the base URL every path is relative to
	Server string
}

var pathParam = regexp.MustCompile(`\{([^}/]+)\}`)

// Under returns ops with prefix joined onto each path
func Under(prefix string, ops ...Op) []Op {
	out := make([]Op, 0, len(ops))
	for _, op := range ops {
		p := strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(op.Path, "/")
		if p != "/" {
			p = strings.TrimRight(p, "/")
		}
		op.Path = p
		out = append(out, op)
	}
	return out
}

// Document renders info and ops as an OpenAPI 3.0 document
func Document(info Info, ops []Op) map[string]any {
	ops = append([]Op(nil), ops...)
	sort.SliceStable(ops, func(i, j int) bool { return ops[i].Path < ops[j].Path })

	paths := map[string]any{}
	tagSet := map[string]bool{}
	for _, op := range ops {
		node, _ := paths[op.Path].(map[string]any)
		if node == nil {
			node = map[string]any{}
			paths[op.Path] = node
		}
		node[strings.ToLower(op.Method)] = operation(op)
		if op.Tag != "" {
			tagSet[op.Tag] = true
		}
	}

	tags := make([]any, 0, len(tagSet))
	for _, t := range sortedKeys(tagSet) {
		tags = append(tags, map[string]any{"name": t})
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       info.Title,
			"version":     info.Version,
			"description": info.Description,
		},
		"servers": []any{map[string]any{"url": info.Server}},
		"tags":    tags,
		"paths":   paths,
		"components": map[string]any{
			"schemas": map[string]any{"Envelope": envelopeSchema()},
			"securitySchemes": map[string]any{
				"BearerAuth": map[string]any{"type": "http", "scheme": "bearer"},
			},
		},
	}
}

func operation(op Op) map[string]any {
	success := op.Status
	if success == 0 {
		success = successCode(op.Method)
	}
	responses := map[string]any{
		strconv.Itoa(success): response(http.StatusText(success)),
		"500":                 response("Internal Server Error"),
	}
	if success == http.StatusNoContent {
		responses["204"] = map[string]any{"description": http.StatusText(success)}
	}
	out := map[string]any{
		"summary":   op.Summary,
		"responses": responses,
	}
	if op.Tag != "" {
		out["tags"] = []any{op.Tag}
	}

	var params []any
	for _, m := range pathParam.FindAllStringSubmatch(op.Path, -1) {
		params = append(params, map[string]any{
			"name": m[1], "in": "path", "required": true,
			"schema": map[string]any{"type": "string"},
		})
	}
	if len(params) > 0 {
		out["parameters"] = params
		responses["404"] = response("Not Found")
	}

	if op.Body {
		out["requestBody"] = map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{"schema": map[string]any{"type": "object"}},
			},
		}
		responses["400"] = response("Bad Request")
		responses["422"] = response("Unprocessable Entity")
	}

	if op.Secured {
		out["security"] = []any{map[string]any{"BearerAuth": []any{}}}
		responses["401"] = response("Unauthorized")
	}
	return out
}

func successCode(method string) int {
	switch strings.ToUpper(method) {
	case http.MethodPost:
		return http.StatusCreated
	case http.MethodDelete:
		return http.StatusNoContent
	default:
		return http.StatusOK
	}
}

func response(desc string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Envelope"},
			},
		},
	}
}

// envelopeSchema mirrors phttp.Envelope
func envelopeSchema() map[string]any {
	prop := func(t string) map[string]any { return map[string]any{"type": t} }
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"error":       prop("string"),
			"field":       prop("string"),
			"request_id":  prop("string"),
			"data":        map[string]any{},
			"page":        prop("object"),
		},
		"required": []any{"status_code", "status"},
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
