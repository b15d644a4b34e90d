/*
Package server implements msgpack IPC between an editor plugin and the
completion engine.

The plugin forwards editor events (buffer activated, completions queried,
completion committed, buffer closed) as msgpack maps on stdin and reads one
response per request from stdout. Every request carries a snapshot of the
buffers the engine needs, so the engine never calls back into the editor.

A completion query looks like:

	{"id": "q1", "op": "query", "p": "bl", "loc": [14],
	 "view": {"id": 3, "text": "t(\"errors.bl\")", "sel": [14, 14], "scope": "source.ruby string.quoted.double.ruby"},
	 "views": [{"id": 4, "text": "..."}], "folders": ["/path/to/app"]}

and is answered with the candidates:

	{"id": "q1", "status": "ok", "c": [{"d": "errors.blank", "i": "errors.blank"}], "t": 85}

After the editor inserted the chosen candidate it sends a commit with the
updated buffer and applies the returned edit:

	{"id": "c1", "op": "commit", "view": {...}}
	{"id": "c1", "status": "ok", "edit": {"b": 3, "e": 22, "t": "errors.blank"}, "t": 12}

# Ops

activate reloads the buffer's translation keys and reports how many were
loaded. query returns candidates. commit and replace return the edit the
corrector applied, if any. close drops the buffer's session. health answers
ok.

Responses carry the time spent in microseconds.
*/
package server

// Operation names.
const (
	OpActivate = "activate"
	OpQuery    = "query"
	OpCommit   = "commit"
	OpReplace  = "replace"
	OpClose    = "close"
	OpHealth   = "health"
)

// Response statuses.
const (
	StatusOK    = "ok"
	StatusReady = "ready"
	StatusError = "error"
)

// ViewSnapshot is the state of one editor buffer at request time.
type ViewSnapshot struct {
	ID       int            `msgpack:"id"`
	Text     string         `msgpack:"text"`
	Sel      []int          `msgpack:"sel,omitempty"`
	Scope    string         `msgpack:"scope,omitempty"`
	Settings map[string]any `msgpack:"settings,omitempty"`
}

// Request is a single editor event.
type Request struct {
	ID        string         `msgpack:"id"`
	Op        string         `msgpack:"op"`
	View      *ViewSnapshot  `msgpack:"view,omitempty"`
	Views     []ViewSnapshot `msgpack:"views,omitempty"`
	Folders   []string       `msgpack:"folders,omitempty"`
	Prefix    string         `msgpack:"p,omitempty"`
	Locations []int          `msgpack:"loc,omitempty"`
	Col       *int           `msgpack:"col,omitempty"`
}

// CompletionItem is one candidate: display text and insertion text.
type CompletionItem struct {
	Display string `msgpack:"d"`
	Insert  string `msgpack:"i"`
}

// EditItem is a replacement the editor should mirror.
type EditItem struct {
	Begin int    `msgpack:"b"`
	End   int    `msgpack:"e"`
	Text  string `msgpack:"t"`
}

// Response answers a Request.
type Response struct {
	ID          string           `msgpack:"id"`
	Status      string           `msgpack:"status"`
	Completions []CompletionItem `msgpack:"c,omitempty"`
	Edit        *EditItem        `msgpack:"edit,omitempty"`
	Keys        int              `msgpack:"keys,omitempty"`
	Error       string           `msgpack:"error,omitempty"`
	TimeTaken   int64            `msgpack:"t"`
}
