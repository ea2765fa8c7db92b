package ginsalvage

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"github.com/deepankarm/jsonsalvage/pkg/salvage"
)

var warningKinds = []any{
	string(salvage.KindParse),
	string(salvage.KindStructureUndetermined),
	string(salvage.KindCorruptLine),
	string(salvage.KindReconstructionFailed),
	string(salvage.KindFragmentExtracted),
	string(salvage.KindRepaired),
	string(salvage.KindNoRecoverableJSON),
}

var responseSchema = sync.OnceValue(func() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(&Response{})
	s.Title = "Recovery response"

	if warnings, ok := s.Properties.Get("warnings"); ok && warnings.Items != nil && warnings.Items.Properties != nil {
		if kind, ok := warnings.Items.Properties.Get("kind"); ok {
			kind.Enum = warningKinds
		}
	}
	return s
})

// ResponseSchema returns the JSON Schema of Response.
func ResponseSchema() *jsonschema.Schema {
	return responseSchema()
}

// SchemaHandler returns a handler that serves the JSON Schema of Response.
//
// Example:
//
//	router.GET("/schema", ginsalvage.SchemaHandler())
func SchemaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ResponseSchema())
	}
}
