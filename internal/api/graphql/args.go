package graphql

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Argument extraction helpers. graphql-go hands resolvers a generic args map.

func requiredObjectID(args map[string]interface{}, key string) (primitive.ObjectID, error) {
	raw, ok := args[key].(string)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%s is required", key)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s is not a valid id: %w", key, err)
	}
	return id, nil
}

func optionalObjectID(args map[string]interface{}, key string) (*primitive.ObjectID, error) {
	raw, ok := args[key].(string)
	if !ok {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, fmt.Errorf("%s is not a valid id: %w", key, err)
	}
	return &id, nil
}

func optionalString(args map[string]interface{}, key string) *string {
	if s, ok := args[key].(string); ok {
		return &s
	}
	return nil
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func optionalInt(args map[string]interface{}, key string) *int {
	if n, ok := args[key].(int); ok {
		return &n
	}
	return nil
}

func optionalBool(args map[string]interface{}, key string) *bool {
	if b, ok := args[key].(bool); ok {
		return &b
	}
	return nil
}

type variablesKey struct{}

// WithVariables stores the request's raw variable map in the context. The
// coerced args map drops null-bound variables entirely, so an explicit null
// (which clears weight/duration on update) is only observable here.
func WithVariables(ctx context.Context, vars map[string]interface{}) context.Context {
	return context.WithValue(ctx, variablesKey{}, vars)
}

func variablesFrom(ctx context.Context) map[string]interface{} {
	vars, _ := ctx.Value(variablesKey{}).(map[string]interface{})
	return vars
}

// explicitNull reports whether the named argument was bound to a variable
// whose value is an explicit null. Absent keys and non-variable argument
// values report false.
func explicitNull(p graphql.ResolveParams, key string) bool {
	vars := variablesFrom(p.Context)
	if len(vars) == 0 {
		return false
	}
	for _, field := range p.Info.FieldASTs {
		for _, arg := range field.Arguments {
			if arg.Name == nil || arg.Name.Value != key {
				continue
			}
			variable, ok := arg.Value.(*ast.Variable)
			if !ok {
				return false
			}
			raw, present := vars[variable.Name.Value]
			return present && raw == nil
		}
	}
	return false
}

func stringList(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	list := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			list = append(list, s)
		}
	}
	return list
}
