package group

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Listener accepts failure notifications for groups this user participates
// in. A received failure is handed to the callback; the callback must not
// propagate the failure back out, or two failing members would ping-pong
// events through the coordinator forever.
type Listener struct {
	srv    *http.Server
	onFail func(groupID string)
}

// NewListener returns a listener bound to addr. The callback runs on the
// request goroutine and should hand off quickly.
func NewListener(addr string, onFail func(groupID string)) *Listener {
	l := &Listener{
		onFail: onFail,
	}

	l.srv = &http.Server{
		Addr:              addr,
		Handler:           l.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return l
}

func (l *Listener) router() chi.Router {
	r := chi.NewRouter()

	r.Post("/v1/groups/{groupID}/fail", l.handleFail)

	return r
}

// Start begins serving in a background goroutine.
func (l *Listener) Start() {
	go func() {
		err := l.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("group listener failed",
				slog.String("addr", l.srv.Addr),
				slog.Any("error", err),
			)
		}
	}()
}

// Stop shuts the listener down, waiting for in-flight requests.
func (l *Listener) Stop(ctx context.Context) error {
	return l.srv.Shutdown(ctx)
}

func (l *Listener) handleFail(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if groupID == "" {
		http.Error(w, "missing group id", http.StatusBadRequest)
		return
	}

	slog.Info("group failure received", slog.String("group_id", groupID))

	l.onFail(groupID)

	w.WriteHeader(http.StatusNoContent)
}
