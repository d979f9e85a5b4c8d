package graph

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-viper/mapstructure/v2"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/FilipLeonard/blogql/graph/model"
	"github.com/FilipLeonard/blogql/internal/apperrors"
)

//go:embed schema.graphqls
var schemaSource string

var schema = gqlparser.MustLoadSchema(&ast.Source{
	Name:  "schema.graphqls",
	Input: schemaSource,
})

// Handler — GraphQL endpoint поверх корневого резолвера: разбирает и
// валидирует запрос по схеме, диспатчит поля верхнего уровня в резолверы
// и сериализует ответ. Подвыборка полей не выполняется — наружу уходят
// полные проекции (внутренних полей в них нет).
type Handler struct {
	resolver *Resolver
}

func NewHandler(r *Resolver) *Handler {
	return &Handler{resolver: r}
}

type gqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type gqlResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors gqlerror.List          `json:"errors,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req gqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, &gqlResponse{Errors: gqlerror.List{gqlerror.Errorf("could not decode request body")}})
		return
	}

	doc, listErr := gqlparser.LoadQuery(schema, req.Query)
	if len(listErr) > 0 {
		writeResponse(w, &gqlResponse{Errors: listErr})
		return
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		writeResponse(w, &gqlResponse{Errors: gqlerror.List{gqlerror.Errorf("operation not found")}})
		return
	}
	if op.Operation == ast.Subscription {
		writeResponse(w, &gqlResponse{Errors: gqlerror.List{gqlerror.Errorf("subscriptions are not supported")}})
		return
	}

	resp := &gqlResponse{Data: make(map[string]interface{})}
	for _, sel := range op.SelectionSet {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}

		alias := field.Alias
		if alias == "" {
			alias = field.Name
		}

		result, err := h.resolveField(r.Context(), op.Operation, field, req.Variables)
		if err != nil {
			resp.Data[alias] = nil
			resp.Errors = append(resp.Errors, toGQLError(err, alias))
			continue
		}
		resp.Data[alias] = result
	}

	writeResponse(w, resp)
}

func (h *Handler) resolveField(ctx context.Context, op ast.Operation, field *ast.Field, vars map[string]interface{}) (interface{}, error) {
	args, err := fieldArguments(field, vars)
	if err != nil {
		return nil, err
	}

	if op == ast.Mutation {
		return h.resolveMutation(ctx, field.Name, args)
	}
	return h.resolveQuery(ctx, field.Name, args)
}

func (h *Handler) resolveQuery(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	q := h.resolver.Query()

	switch name {
	case "login":
		email, _ := args["email"].(string)
		password, _ := args["password"].(string)
		return q.Login(ctx, email, password)

	case "posts":
		page, err := intArg(args, "page")
		if err != nil {
			return nil, err
		}
		return q.Posts(ctx, page)

	case "post":
		id, _ := args["id"].(string)
		return q.Post(ctx, id)

	case "user":
		return q.User(ctx)
	}

	return nil, fmt.Errorf("unknown query: %s", name)
}

func (h *Handler) resolveMutation(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	m := h.resolver.Mutation()

	switch name {
	case "createUser":
		var input model.UserInput
		if err := mapstructure.Decode(args["userInput"], &input); err != nil {
			return nil, fmt.Errorf("could not decode userInput: %w", err)
		}
		return m.CreateUser(ctx, input)

	case "createPost":
		var input model.PostInput
		if err := mapstructure.Decode(args["postInput"], &input); err != nil {
			return nil, fmt.Errorf("could not decode postInput: %w", err)
		}
		return m.CreatePost(ctx, input)

	case "updatePost":
		id, _ := args["id"].(string)
		var input model.PostInput
		if err := mapstructure.Decode(args["postInput"], &input); err != nil {
			return nil, fmt.Errorf("could not decode postInput: %w", err)
		}
		return m.UpdatePost(ctx, id, input)

	case "deletePost":
		id, _ := args["id"].(string)
		return m.DeletePost(ctx, id)

	case "updateStatus":
		status, _ := args["status"].(string)
		return m.UpdateStatus(ctx, status)
	}

	return nil, fmt.Errorf("unknown mutation: %s", name)
}

func fieldArguments(field *ast.Field, vars map[string]interface{}) (map[string]interface{}, error) {
	args := make(map[string]interface{}, len(field.Arguments))
	for _, a := range field.Arguments {
		val, err := a.Value.Value(vars)
		if err != nil {
			return nil, fmt.Errorf("could not resolve argument %s: %w", a.Name, err)
		}
		args[a.Name] = val
	}
	return args, nil
}

// intArg достает опциональный Int-аргумент: инлайн-литералы приходят как
// int64, значения переменных из JSON — как float64.
func intArg(args map[string]interface{}, name string) (*int, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}

	switch v := raw.(type) {
	case int64:
		n := int(v)
		return &n, nil
	case float64:
		n := int(v)
		return &n, nil
	default:
		return nil, fmt.Errorf("argument %s is not an integer", name)
	}
}

// toGQLError переносит код и список нарушений в extensions ответа —
// транспортное отображение таксономии ошибок.
func toGQLError(err error, path string) *gqlerror.Error {
	gqlErr := &gqlerror.Error{
		Message: err.Error(),
		Path:    ast.Path{ast.PathName(path)},
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		ext := make(map[string]interface{})
		if appErr.Code != 0 {
			ext["code"] = appErr.Code
		}
		if len(appErr.Data) > 0 {
			ext["data"] = appErr.Data
		}
		gqlErr.Extensions = ext
	}

	return gqlErr
}

func writeResponse(w http.ResponseWriter, resp *gqlResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("could not write graphql response: %v", err)
	}
}
