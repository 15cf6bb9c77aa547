package swaggerkit

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Op describes one endpoint for the generated document
type Op struct {
	Method  string
	Path    string
	Tag     string
	Summary string
	// Body names the request fields, nil for body-less endpoints
	Body []string
	// Statuses lists non default responses, e.g. 409 or 423
	Statuses map[int]string
}

var (
	mu  sync.Mutex
	ops = map[string]Op{}
)

// Describe records ops, later calls for the same method and path replace earlier ones
// http packages call it from Register so the document follows the mounted routes
func Describe(list ...Op) {
	mu.Lock()
	defer mu.Unlock()
	for _, op := range list {
		ops[strings.ToLower(op.Method)+" "+op.Path] = op
	}
}

// Spec renders an OpenAPI 3.0 document of every described op
func Spec(ver string) map[string]any {
	mu.Lock()
	keys := make([]string, 0, len(ops))
	for k := range ops {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	list := make([]Op, 0, len(keys))
	for _, k := range keys {
		list = append(list, ops[k])
	}
	mu.Unlock()

	paths := map[string]any{}
	for _, op := range list {
		node, _ := paths[op.Path].(map[string]any)
		if node == nil {
			node = map[string]any{}
			paths[op.Path] = node
		}
		node[strings.ToLower(op.Method)] = operation(op)
	}
	return map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": "juryduty API", "version": ver},
		"servers": []any{map[string]any{"url": "/api/v1"}},
		"paths":   paths,
		"components": map[string]any{
			"schemas": map[string]any{"Envelope": envelopeSchema()},
		},
	}
}

func operation(op Op) map[string]any {
	ref := map[string]any{"$ref": "#/components/schemas/Envelope"}
	envelope := func(desc string) map[string]any {
		return map[string]any{
			"description": desc,
			"content":     map[string]any{"application/json": map[string]any{"schema": ref}},
		}
	}
	responses := map[string]any{
		"200": envelope("OK"),
		"400": envelope("Bad Request"),
		"500": envelope("Internal Server Error"),
	}
	for code, desc := range op.Statuses {
		responses[strconv.Itoa(code)] = envelope(desc)
	}
	out := map[string]any{
		"tags":      []any{op.Tag},
		"summary":   op.Summary,
		"responses": responses,
	}
	if params := pathParams(op.Path); len(params) > 0 {
		out["parameters"] = params
	}
	if len(op.Body) > 0 {
		props := map[string]any{}
		for _, f := range op.Body {
			props[f] = map[string]any{"type": "string"}
		}
		out["requestBody"] = map[string]any{
			"required": true,
			"content": map[string]any{"application/json": map[string]any{
				"schema": map[string]any{"type": "object", "properties": props},
			}},
		}
	}
	return out
}

func pathParams(path string) []any {
	var out []any
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			out = append(out, map[string]any{
				"name":     strings.Trim(seg, "{}"),
				"in":       "path",
				"required": true,
				"schema":   map[string]any{"type": "string"},
			})
		}
	}
	return out
}

// envelopeSchema mirrors phttp.Envelope
func envelopeSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
			"data":        map[string]any{"type": "object"},
		},
		"required": []any{"status_code", "status"},
	}
}
