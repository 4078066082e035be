package http

import (
	"encoding/json"
	"sync"

	"github.com/carlsonrocha-octa/softtek-backend/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// openAPIDoc serves the embedded OpenAPI document to the swag registry.
type openAPIDoc struct {
	doc string
}

func (d openAPIDoc) ReadDoc() string {
	return d.doc
}

// swaggerRegistration publishes a document once and remembers the outcome,
// so every router built afterwards sees the same result.
type swaggerRegistration struct {
	once sync.Once
	err  error

	load     func() (*openapi3.T, error)
	register func(doc swag.Swagger)
}

func (r *swaggerRegistration) run() error {
	r.once.Do(func() {
		spec, err := r.load()
		if err != nil {
			r.err = err
			return
		}
		raw, err := json.Marshal(spec)
		if err != nil {
			r.err = err
			return
		}
		r.register(openAPIDoc{doc: string(raw)})
	})
	return r.err
}

// defaultSwagger registers under swag's default name, which is where
// echo-swagger reads the document from.
var defaultSwagger = &swaggerRegistration{
	load: servers.GetSwagger,
	register: func(doc swag.Swagger) {
		swag.Register(swag.Name, doc)
	},
}

func registerSwagger() error {
	return defaultSwagger.run()
}
