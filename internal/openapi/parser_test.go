package openapi

import (
	"errors"
	"reflect"
	"testing"
)

const petSpec = `
openapi: 3.0.3
info:
  title: Pet API
  version: "1.2.0"
  description: Manage pets.
servers:
  - url: https://api.example.com/v1
tags:
  - name: Pets
    description: Pet operations
paths:
  /users/{id}:
    parameters:
      - name: id
        in: path
        required: true
        schema:
          type: string
      - name: verbose
        in: query
        schema:
          type: boolean
    get:
      operationId: getUserById
      summary: Fetch a user
      tags: [Users]
      parameters:
        - name: verbose
          in: query
          description: expanded output
          required: true
          schema:
            type: boolean
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/User"
        "404":
          description: Not found
        default:
          description: Unexpected error
  /users:
    get:
      operationId: list_users
      responses:
        "200":
          description: OK
    post:
      summary: Create a user
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/User"
      responses:
        "201":
          description: Created
components:
  schemas:
    User:
      type: object
      description: A user record.
      required: [id]
      properties:
        id:
          type: string
          format: uuid
        friends:
          type: array
          items:
            $ref: "#/components/schemas/User"
`

func TestParseNormalizesOperations(t *testing.T) {
	t.Parallel()

	spec, err := Parse(petSpec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if spec.Info.Title != "Pet API" || spec.Info.Version != "1.2.0" {
		t.Fatalf("unexpected info: %#v", spec.Info)
	}
	if len(spec.Servers) != 1 || spec.Servers[0].URL != "https://api.example.com/v1" {
		t.Fatalf("unexpected servers: %#v", spec.Servers)
	}

	var slugs []string
	for _, op := range spec.Operations {
		slugs = append(slugs, op.Slug)
	}
	want := []string{"get-user-by-id", "list-users", "post-users"}
	if !reflect.DeepEqual(slugs, want) {
		t.Fatalf("expected slugs %v, got %v", want, slugs)
	}
}

func TestParseSlugRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "camel_case", in: "getUserById", want: "get-user-by-id"},
		{name: "snake_case", in: "list_users", want: "list-users"},
		{name: "mixed", in: "get_UserProfile", want: "get-user-profile"},
		{name: "already_kebab", in: "list-users", want: "list-users"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := OperationSlug(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseFallbackOperationID(t *testing.T) {
	t.Parallel()

	spec, err := Parse(petSpec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var post *Operation
	for i := range spec.Operations {
		if spec.Operations[i].Method == MethodPost {
			post = &spec.Operations[i]
		}
	}
	if post == nil {
		t.Fatal("post operation missing")
	}
	if post.ID != "post-users" {
		t.Fatalf("expected fallback id post-users, got %q", post.ID)
	}
	if post.Title() != "Create a user" {
		t.Fatalf("unexpected title %q", post.Title())
	}
}

func TestParseParameterOverride(t *testing.T) {
	t.Parallel()

	spec, err := Parse(petSpec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	op := spec.Operations[0]
	if op.Slug != "get-user-by-id" {
		t.Fatalf("unexpected first operation %q", op.Slug)
	}
	if len(op.Parameters) != 2 {
		t.Fatalf("expected 2 merged parameters, got %#v", op.Parameters)
	}
	if op.Parameters[0].Name != "id" || !op.Parameters[0].Required {
		t.Fatalf("path-level parameter lost: %#v", op.Parameters[0])
	}
	verbose := op.Parameters[1]
	if verbose.Name != "verbose" || !verbose.Required || verbose.Description != "expanded output" {
		t.Fatalf("operation-level parameter should override by name: %#v", verbose)
	}
}

func TestParseResponseCodesOrder(t *testing.T) {
	t.Parallel()

	spec, err := Parse(petSpec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := spec.Operations[0].ResponseCodes()
	want := []string{"200", "404", "default"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseResolvesSchemaRefs(t *testing.T) {
	t.Parallel()

	spec, err := Parse(petSpec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := spec.Operations[0].Responses["200"]
	if len(resp.Content) != 1 {
		t.Fatalf("expected one media type, got %#v", resp.Content)
	}
	schema := resp.Content[0].Schema
	if schema == nil || schema.Ref != "User" || schema.Type != "object" {
		t.Fatalf("reference not inlined: %#v", schema)
	}
	if schema.Properties["id"].Format != "uuid" {
		t.Fatalf("nested property lost: %#v", schema.Properties["id"])
	}

	// Self-reference bottoms out at the depth guard instead of recursing.
	friends := schema.Properties["friends"]
	depth := 0
	for s := friends; s != nil; depth++ {
		if s.Unknown {
			break
		}
		if s.Items != nil {
			s = s.Items
			continue
		}
		s = s.Properties["friends"]
	}
	if depth == 0 {
		t.Fatalf("cyclic schema did not terminate: %#v", friends)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
	}{
		{name: "empty", in: "   \n"},
		{name: "not_yaml", in: "{unterminated"},
		{name: "missing_paths", in: "openapi: 3.0.0\ninfo:\n  title: X\n  version: \"1\"\n"},
		{name: "paths_not_map", in: "paths: [a, b]\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tc.in)
			if err == nil {
				t.Fatal("expected error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseAcceptsJSON(t *testing.T) {
	t.Parallel()

	spec, err := Parse(`{"openapi":"3.0.0","info":{"title":"J","version":"1"},"paths":{"/ping":{"get":{"operationId":"ping","responses":{"200":{"description":"OK"}}}}}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spec.Operations) != 1 || spec.Operations[0].Slug != "ping" {
		t.Fatalf("unexpected operations: %#v", spec.Operations)
	}
}

func TestSchemaDisplayType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   *Schema
		want string
	}{
		{name: "nil", in: nil, want: "any"},
		{name: "plain", in: &Schema{Type: "string"}, want: "string"},
		{name: "formatted", in: &Schema{Type: "string", Format: "uuid"}, want: "string (uuid)"},
		{name: "array", in: &Schema{Type: "array", Items: &Schema{Type: "integer"}}, want: "array<integer>"},
		{name: "ref", in: &Schema{Ref: "User"}, want: "User"},
		{name: "untyped", in: &Schema{}, want: "any"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.in.DisplayType(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
