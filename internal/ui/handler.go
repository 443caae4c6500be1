package ui

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/futig/churn-console/internal/entity"
	"github.com/futig/churn-console/internal/pkg/formatter"
	"github.com/futig/churn-console/internal/pkg/logger"
	"github.com/futig/churn-console/internal/pkg/response"
	"github.com/futig/churn-console/internal/ui/session"
	"github.com/futig/churn-console/internal/usecase/console"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	controller *console.Controller
	sessions   *session.Manager
	formats    *formatter.Factory
	templates  *template.Template
}

func NewHandler(
	controller *console.Controller,
	sessions *session.Manager,
	formats *formatter.Factory,
	templates *template.Template,
) *Handler {
	return &Handler{
		controller: controller,
		sessions:   sessions,
		formats:    formats,
		templates:  templates,
	}
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Index")

	sess := h.sessions.Resolve(w, r)
	view := newPageView(sess.Snapshot())

	h.render(ctx, w, "index.html", view)
}

// Submit handles POST /submit. Form fields go through the reducer, then
// the submit runs synchronously; guard violations (empty query, offline
// backend, in-flight request) leave the state untouched and just render
// the page again.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Submit")

	if err := r.ParseForm(); err != nil {
		ctxzap.Warn(ctx, "failed to parse submit form", zap.Error(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess := h.sessions.Resolve(w, r)

	sess.WithLock(func(st *console.State) {
		h.controller.SetQuery(st, r.PostFormValue("query"))
		h.controller.SetCustomerID(st, r.PostFormValue("customer_id"))

		if mode, err := entity.ParseMode(r.PostFormValue("mode")); err == nil {
			h.controller.SelectMode(st, mode)
		}
		if kind, err := entity.ParseRetrieverKind(r.PostFormValue("retriever")); err == nil {
			h.controller.SetRetriever(st, kind)
		}

		if err := h.controller.Submit(ctx, st); err != nil {
			// Guards are silent no-ops for the page: the user sees the
			// unchanged state, mirroring a disabled submit button.
			ctxzap.Debug(ctx, "submit skipped", zap.Error(err))
		}
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Evaluation handles GET /evaluation
func (h *Handler) Evaluation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Evaluation")

	view := evaluationView{}
	report, err := h.controller.FetchEvaluation(ctx)
	if err != nil {
		ctxzap.Warn(ctx, "failed to fetch evaluation results", zap.Error(err))
		view.ErrorMessage = console.FormatError(err)
	} else {
		view.Results = report.Results
		view.Summary = console.SummarizeEvaluation(report)
		view.MetricsInfo = report.MetricsInfo
		view.Note = report.Note
	}

	h.render(ctx, w, "evaluation.html", view)
}

// Status handles GET /api/status: the backend reachability badge polls
// this after mount because the health probe runs asynchronously.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	st := sess.Snapshot()

	response.Success(w, map[string]string{
		"status": string(st.Backend),
	})
}

// Export handles GET /export/{format}: downloads the last answer as a
// markdown or PDF report. Without an answer it just goes home.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Export")

	format, err := entity.ParseResultFormat(chi.URLParam(r, "format"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "unsupported export format")
		return
	}

	sess := h.sessions.Resolve(w, r)

	var report string
	sess.WithLock(func(st *console.State) {
		if st.Answer == nil {
			err = entity.ErrNoAnswer
			return
		}
		report = console.BuildReport(st.Answer)
	})
	if errors.Is(err, entity.ErrNoAnswer) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	f, err := h.formats.Create(format)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "unsupported export format")
		return
	}

	data, err := f.Format(report)
	if err != nil {
		ctxzap.Error(ctx, "failed to format report", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to format report")
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=churn-report%s", f.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) render(ctx context.Context, w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		ctxzap.Error(ctx, "template execution failed",
			zap.String("template", name),
			zap.Error(err),
		)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
