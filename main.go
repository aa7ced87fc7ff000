package main

import (
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"os"

	"github.com/km-arc/go-sugar/app"
	"github.com/km-arc/go-sugar/framework/database"
	sugarhttp "github.com/km-arc/go-sugar/http"
	"github.com/km-arc/go-sugar/routing"
)

func main() {
	a := app.New("go-sugar demo", "notes service backed by lifecycle-managed objects")

	if err := database.Register(a.Manager); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Schema migration once the store is constructed and set up.
	a.OnStart(func() error {
		store, err := a.Manager.Get(database.ID)
		if err != nil {
			return err
		}
		_, err = store.(*database.Store).DB().Exec(
			`CREATE TABLE IF NOT EXISTS notes (id INTEGER PRIMARY KEY AUTOINCREMENT, body TEXT NOT NULL)`)
		return err
	})

	a.Router.Prefix("/api/v1", func(api *routing.Router) {
		api.Post("/notes", app.Inject(a, database.ID, createNote))
		api.Get("/notes/{id}", app.Inject(a, database.ID, showNote))
	})

	if err := a.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createNote(store *database.Store, w nethttp.ResponseWriter, r *nethttp.Request) {
	res := sugarhttp.NewResponse(w)

	var body struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Body == "" {
		res.BadRequest("body is required")
		return
	}

	row, err := store.DB().Exec(`INSERT INTO notes (body) VALUES (?)`, body.Body)
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	id, _ := row.LastInsertId()
	res.Created(map[string]any{"id": id, "body": body.Body})
}

func showNote(store *database.Store, w nethttp.ResponseWriter, r *nethttp.Request) {
	res := sugarhttp.NewResponse(w)

	var body string
	err := store.DB().QueryRow(`SELECT body FROM notes WHERE id = ?`, routing.Param(r, "id")).Scan(&body)
	if err != nil {
		res.NotFound("note not found")
		return
	}
	res.OK(map[string]any{"id": routing.Param(r, "id"), "body": body})
}
