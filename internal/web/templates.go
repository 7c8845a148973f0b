package web

import (
	"bytes"
	"html/template"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

type templates struct {
	index *template.Template
	page  *template.Template
	game  *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"cellSymbol": func(c domain.Cell) string { return c.String() },
		"add":        func(a, b int) int { return a + b },
		"mul":        func(a, b int) int { return a * b },
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>
.board-row { display: flex; }
.square { width: 3em; height: 3em; font-size: 1.5em; }
.square.winning { background: #ffe066; }
.move.current { font-weight: bold; }
</style>
</head><body>{{template "content" .}}</body></html>`))
	// The page set carries "game" so the full page can embed the fragment.
	template.Must(base.New("game").Parse(gameTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(
		`<h1>Tic-Tac-Toe</h1><form action="/game" method="post"><button>New game</button></form>`))
	page := template.Must(template.Must(base.Clone()).New("content").Parse(`
<h1>Tic-Tac-Toe</h1>
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div id="game-container" hx-sse="swap:game">{{template "game" .}}</div>
</div>
<form action="/game" method="post"><button>New game</button></form>`))
	game := template.Must(template.New("game_only").Funcs(funcs()).Parse(gameTemplate))
	return &templates{index: index, page: page, game: game}
}

// renderTemplate executes t, or the named template in t's set when name is set.
func renderTemplate(t *template.Template, name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if name == "" {
		err = t.Execute(&buf, data)
	} else {
		err = t.ExecuteTemplate(&buf, name, data)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type gameData struct {
	ID    string
	View  domain.View
	Error string
}

const gameTemplate = `<div id="game">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <div class="status">{{.View.Status}}</div>
  <div class="board">
  {{range $r := iter .View.Size}}
  <div class="board-row">
    {{range $c := iter $.View.Size}}{{$i := add (mul $r $.View.Size) $c}}
    <form hx-post="/game/{{$.ID}}/play" hx-target="#game" hx-swap="outerHTML" method="post">
      <input type="hidden" name="cell" value="{{$i}}">
      <button type="submit" class="square{{if $.View.IsWinningCell $i}} winning{{end}}">{{cellSymbol (index $.View.Board $i)}}</button>
    </form>
    {{end}}
  </div>
  {{end}}
  </div>
  <form hx-post="/game/{{.ID}}/sort" hx-target="#game" hx-swap="outerHTML" method="post">
    <button type="submit" class="sort">{{if .View.SortDescending}}Sort ascending{{else}}Sort descending{{end}}</button>
  </form>
  <ol class="moves">
  {{range .View.Moves}}
    <li>
      <form hx-post="/game/{{$.ID}}/jump" hx-target="#game" hx-swap="outerHTML" method="post">
        <input type="hidden" name="move" value="{{.MoveNumber}}">
        <button type="submit" class="move{{if .IsCurrent}} current{{end}}">{{.Label}}</button>
      </form>
    </li>
  {{end}}
  </ol>
</div>
`
