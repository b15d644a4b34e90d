package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/ri18n/pkg/buffer"
	"github.com/bastiangx/ri18n/pkg/host"
	"github.com/bastiangx/ri18n/pkg/session"
	"github.com/bastiangx/ri18n/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for one editor.
type Server struct {
	manager *session.Manager
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	logger  *log.Logger
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(manager *session.Manager, r io.Reader, w io.Writer, logger *log.Logger) *Server {
	return &Server{
		manager: manager,
		dec:     msgpack.NewDecoder(r),
		enc:     msgpack.NewEncoder(w),
		logger:  logger,
	}
}

// Start processes requests until the input ends or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Debug("Starting server")
	if err := s.send(Response{Status: StatusReady}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Debug("client disconnected")
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			if sendErr := s.send(Response{Status: StatusError, Error: "invalid request"}); sendErr != nil {
				return sendErr
			}
			continue
		}

		if err := s.send(s.Handle(ctx, req)); err != nil {
			return err
		}
	}
}

// Handle processes a single request.
func (s *Server) Handle(ctx context.Context, req Request) Response {
	start := time.Now()
	resp := s.dispatch(ctx, req)
	resp.ID = req.ID
	resp.TimeTaken = time.Since(start).Microseconds()
	return resp
}

func (s *Server) dispatch(ctx context.Context, req Request) Response {
	if req.Op == OpHealth {
		return Response{Status: StatusOK}
	}
	if req.View == nil {
		return errorResponse("missing view for %q", req.Op)
	}

	view := req.View.buffer()
	window := s.window(view, req)

	switch req.Op {
	case OpActivate:
		sess := s.manager.Activate(ctx, view, window)
		resp := Response{Status: StatusOK, Keys: sess.Cache.Len()}
		if err := sess.Cache.Err(); err != nil {
			resp.Error = err.Error()
		}
		return resp

	case OpQuery:
		completions := s.manager.Query(view, window, req.Prefix, req.Locations)
		return Response{Status: StatusOK, Completions: toItems(completions)}

	case OpCommit:
		edit, ok := s.manager.Commit(view)
		return editResponse(edit, ok)

	case OpReplace:
		if req.Col == nil {
			return errorResponse("replace needs col")
		}
		edit, ok := s.manager.Replace(view, *req.Col)
		return editResponse(edit, ok)

	case OpClose:
		s.manager.Close(view.ID())
		return Response{Status: StatusOK}

	default:
		return errorResponse("unknown op: %s", req.Op)
	}
}

func (s *Server) window(active *buffer.Buffer, req Request) host.Window {
	views := make([]host.Buffer, 0, len(req.Views)+1)
	views = append(views, active)
	for i := range req.Views {
		if req.Views[i].ID == active.ID() {
			continue
		}
		views = append(views, req.Views[i].buffer())
	}
	return buffer.NewWindow(req.Folders, views...)
}

func (s *Server) send(resp Response) error {
	if err := s.enc.Encode(resp); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

func (v *ViewSnapshot) buffer() *buffer.Buffer {
	b := buffer.New(v.ID, v.Text).SetScope(v.Scope)
	switch len(v.Sel) {
	case 0:
	case 1:
		b.SetSelection(v.Sel[0], v.Sel[0])
	default:
		b.SetSelection(v.Sel[0], v.Sel[1])
	}
	for k, val := range v.Settings {
		b.SetSetting(k, val)
	}
	return b
}

func toItems(completions []suggest.Completion) []CompletionItem {
	items := make([]CompletionItem, len(completions))
	for i, c := range completions {
		items[i] = CompletionItem{Display: c.Display, Insert: c.Insert}
	}
	return items
}

func editResponse(edit suggest.Edit, ok bool) Response {
	if !ok {
		return Response{Status: StatusOK}
	}
	return Response{
		Status: StatusOK,
		Edit:   &EditItem{Begin: edit.Begin, End: edit.End, Text: edit.Text},
	}
}

func errorResponse(format string, args ...any) Response {
	return Response{Status: StatusError, Error: fmt.Sprintf(format, args...)}
}
