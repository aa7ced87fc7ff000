package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-sugar/framework/lifecycle"
	sugarhttp "github.com/km-arc/go-sugar/http"
)

// Inject adapts a handler that takes a resolved lifecycle object into a
// plain http.HandlerFunc. Resolution happens per request, so routes can be
// wired before Start; after Start the memoized instance is returned without
// new construction.
//
//	a.Router.Get("/orders/{id}", app.Inject(a, database.ID,
//	    func(store *database.Store, w http.ResponseWriter, r *http.Request) {
//	        ...
//	    }))
func Inject[T any](a *Application, id lifecycle.ID, h func(T, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	resolve := lifecycle.Injectable[T](a.Manager, id)
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := resolve()
		if err != nil {
			a.Logger().Error("dependency resolution failed",
				zap.String("id", string(id)),
				zap.Error(err),
			)
			sugarhttp.NewResponse(w).ServerError("dependency unavailable: " + string(id))
			return
		}
		h(v, w, r)
	}
}
