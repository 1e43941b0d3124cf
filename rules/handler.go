package rules

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jsexpr/jsexpr"
)

type evaluateRequest struct {
	Expr    string         `json:"expr" binding:"required"`
	Context map[string]any `json:"context"`
}

// Mount registers the evaluation endpoints on a gin engine:
//
//	POST /evaluate           ad-hoc expression with inline context
//	POST /rules/:id/evaluate JSON payload becomes the rule's context
func Mount(g *gin.Engine, set *Set, funcs jsexpr.FuncMap, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	g.POST("/evaluate", func(c *gin.Context) {
		var req evaluateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request: " + err.Error()})
			return
		}
		value, err := jsexpr.New(req.Context, funcs).Evaluate(req.Expr)
		if err != nil {
			status := http.StatusUnprocessableEntity
			var perr *jsexpr.ParseError
			if errors.As(err, &perr) {
				status = http.StatusBadRequest
			}
			logger.Error("expression evaluation failed",
				"expr", req.Expr,
				"error", err.Error())
			c.JSON(status, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": value})
	})

	g.POST("/rules/:id/evaluate", func(c *gin.Context) {
		id := c.Param("id")
		if set.Get(id) == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "unknown rule " + id})
			return
		}
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "reading payload: " + err.Error()})
			return
		}
		vars := map[string]any{}
		if len(payload) > 0 {
			vars, err = ContextFromJSON(payload)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
		}
		outcome, err := set.Eval(id, vars, funcs)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		if outcome.Err != nil {
			logger.Error("rule evaluation failed",
				"rule", id,
				"error", outcome.Err.Error())
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": outcome.Err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"rule":     outcome.Rule.ID,
			"severity": outcome.Rule.Severity,
			"value":    outcome.Value,
			"pass":     outcome.Pass,
		})
	})
}
