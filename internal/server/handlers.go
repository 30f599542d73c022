package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log"
	"net/http"

	"github.com/louisbranch/fateforge/internal/forge/domain"
	"github.com/louisbranch/fateforge/internal/forge/gate"
	"github.com/louisbranch/fateforge/internal/forge/hints"
	"github.com/louisbranch/fateforge/internal/forge/service"
	"github.com/louisbranch/fateforge/internal/platform/errors"
)

// Forge is the slice of the generation service the HTTP layer uses.
type Forge interface {
	GenerateSkeleton(ctx context.Context, in service.SkeletonInput) (service.Skeleton, error)
	GenerateRemaining(ctx context.Context, in service.RemainingInput) (domain.Sheet, error)
	GenerateHints(ctx context.Context, in service.HintsInput) (hints.Response, error)
}

type generateSkeletonRequest struct {
	Idea      string   `json:"idea"`
	Setting   string   `json:"setting"`
	SkillList []string `json:"skillList"`
}

type remainingOptions struct {
	Mode          string   `json:"mode"`
	Count         int      `json:"count"`
	TargetSkillID string   `json:"targetSkillId"`
	ActionType    string   `json:"actionType"`
	Note          string   `json:"note"`
	SkillBank     []string `json:"skillBank"`
}

type generateRemainingRequest struct {
	Character               domain.Sheet      `json:"character"`
	AllowOverwriteUserEdits bool              `json:"allowOverwriteUserEdits"`
	Options                 *remainingOptions `json:"options"`
}

type gmHintsRequest struct {
	Character domain.Sheet `json:"character"`
	Target    struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	} `json:"target"`
	Options *struct {
		Num  int    `json:"num"`
		Tone string `json:"tone"`
	} `json:"options"`
}

type errorResponse struct {
	Code             string         `json:"code"`
	Message          string         `json:"message"`
	ValidationErrors []gate.Problem `json:"validationErrors,omitempty"`
}

func (s *Server) handleGenerateSkeleton(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generateSkeletonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// An empty body asks for the sample sheet.
		if stderrors.Is(err, io.EOF) {
			writeJSON(w, http.StatusOK, service.SampleSkeleton())
			return
		}
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	out, err := s.forge.GenerateSkeleton(r.Context(), service.SkeletonInput{
		Idea:      req.Idea,
		Setting:   req.Setting,
		SkillList: req.SkillList,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSampleSkeleton(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, service.SampleSkeleton())
}

func (s *Server) handleGenerateRemaining(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generateRemainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	in := service.RemainingInput{
		Sheet:          req.Character,
		AllowOverwrite: req.AllowOverwriteUserEdits,
	}
	if req.Options != nil {
		in.Mode = gate.Mode(req.Options.Mode)
		in.Count = req.Options.Count
		in.TargetSkillID = req.Options.TargetSkillID
		in.ActionType = req.Options.ActionType
		in.Note = req.Options.Note
		in.SkillBank = req.Options.SkillBank
	}

	out, err := s.forge.GenerateRemaining(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req gmHintsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	in := service.HintsInput{
		Sheet:      req.Character,
		TargetType: req.Target.Type,
		TargetID:   req.Target.ID,
	}
	if req.Options != nil {
		in.Tone = req.Options.Tone
	}

	out, err := s.forge.GenerateHints(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// writeError maps service errors onto HTTP responses. Exhausted retry
// loops become a 422 with field-level validation errors; everything
// else uses the error code's status and localized user message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	if stderrors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:             string(errors.CodeValidationFailed),
			Message:          "Model could not produce a valid CharacterSheet after retries",
			ValidationErrors: ve.Problems,
		})
		return
	}

	code := errors.GetCode(err)
	locale := r.Header.Get("Accept-Language")
	if locale == "" {
		locale = errors.DefaultLocale
	}
	writeJSON(w, code.HTTPStatus(), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err, locale),
	})
}

func writeErrorMessage(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}
