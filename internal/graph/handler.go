package graph

import (
	"encoding/json"
	"net/http"
	"strings"

	"kebab-sayank-be/internal/logger"
	"kebab-sayank-be/internal/transport"
	"kebab-sayank-be/internal/utils"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

const maxQueryBytes = 1 << 20

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler serves POST /query. The request and response writer are put on
// the context so resolvers can read headers and set cookies.
func Handler(schema graphql.Schema) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			utils.WriteJSONError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		var req request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBytes)).Decode(&req); err != nil {
			utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			utils.WriteJSONError(w, "query is required", http.StatusBadRequest)
			return
		}

		ctx := transport.WithHTTP(r.Context(), r, w)
		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        ctx,
		})

		if result.HasErrors() {
			logger.FromCtx(ctx).Info("graphql request returned errors",
				zap.String("operation", req.OperationName),
				zap.Int("errors", len(result.Errors)),
			)
		}

		utils.WriteJSON(w, http.StatusOK, result)
	})
}
