package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fabianfernandess/FitQuest/internal/models"
)

// chatRequest is the POST /chat payload: the user context plus the chat
// identity the message log is keyed by.
type chatRequest struct {
	UserID string `json:"user_id"`
	models.UserContext
}

// chatHandler runs the coaching pipeline for one message. The reply is
// always renderable: pipeline failures surface as the canonical fallback
// reply with status 200, never as an error status.
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.chatHandler: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, models.Error("invalid request body"))
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, models.Error(models.ErrEmptyUserID.Error()))
		return
	}
	if err := req.UserContext.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	userMsg := models.NewChatMessage(req.UserID, models.SenderUser, req.Message)
	if err := s.st.AddMessage(userMsg); err != nil {
		// Availability first: answer the user even if the log write failed.
		slog.Warn("Server.chatHandler: failed to persist user message", "error", err, "user", req.UserID)
	}

	reply := s.coach.GetFitnessResponse(r.Context(), req.UserContext)

	coachMsg := models.NewChatMessage(req.UserID, models.SenderCoach, reply.Response)
	coachMsg.Reply = &reply
	if err := s.st.AddMessage(coachMsg); err != nil {
		slog.Warn("Server.chatHandler: failed to persist coach message", "error", err, "user", req.UserID)
	}

	writeJSON(w, http.StatusOK, models.Success(reply))
}

// classifyHandler assigns an onboarding profile to a house. Unlike chat,
// classification failures are surfaced so the app can re-ask.
func (s *Server) classifyHandler(w http.ResponseWriter, r *http.Request) {
	var profile models.ClassificationProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		slog.Warn("Server.classifyHandler: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, models.Error("invalid request body"))
		return
	}
	if profile.Name == "" {
		writeJSON(w, http.StatusBadRequest, models.Error(models.ErrEmptyUserName.Error()))
		return
	}

	assignment, err := s.classifier.ClassifyHouse(r.Context(), profile)
	if err != nil {
		slog.Error("Server.classifyHandler: classification failed", "error", err, "user", profile.Name)
		writeJSON(w, http.StatusBadGateway, models.Error("classification failed"))
		return
	}

	writeJSON(w, http.StatusOK, models.Success(assignment))
}

// historyHandler returns the ordered chat log for a user.
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, models.Error("user_id query parameter is required"))
		return
	}

	messages, err := s.st.GetMessages(userID)
	if err != nil {
		slog.Error("Server.historyHandler: failed to load history", "error", err, "user", userID)
		writeJSON(w, http.StatusInternalServerError, models.Error("failed to load chat history"))
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	writeJSON(w, http.StatusOK, models.Success(messages))
}

// healthHandler reports liveness.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.SuccessWithMessage("fitquest is healthy", nil))
}
