package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/muhammadolammi/opportunitymatch/internal/docstore"
	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/oracle"
	"github.com/muhammadolammi/opportunitymatch/internal/profile"
)

const (
	analyzeFailure = "Failed to analyze CV. Please try again."
	chatFailure    = "Failed to process chat message. Please try again."
)

type analyzeRequest struct {
	CVText      string `json:"cvText"`
	CVObjectKey string `json:"cvObjectKey"`
}

func (s *Server) analyzeCV(c *gin.Context) {
	var req analyzeRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}
	ctx := c.Request.Context()
	uid, authed := callerID(c)

	text := strings.TrimSpace(req.CVText)
	key := strings.TrimSpace(req.CVObjectKey)
	fromArchive := false
	switch {
	case text != "":
	case key != "":
		if !authed {
			respondError(c, domain.Unauthorized("Log in to analyze a stored CV"), "")
			return
		}
		if s.archive == nil {
			respondError(c, domain.Validation("CV storage is not configured"), "")
			return
		}
		stored, err := s.archive.Load(ctx, uid, key)
		if err != nil {
			respondError(c, err, analyzeFailure)
			return
		}
		text = strings.TrimSpace(stored)
		fromArchive = true
		if text == "" {
			respondError(c, domain.Validation("Stored CV is empty"), "")
			return
		}
	default:
		respondError(c, domain.Validation("CV text is required"), "")
		return
	}
	if len(text) > docstore.MaxCVBytes {
		respondError(c, domain.Validation("CV text is too long"), "")
		return
	}

	var caller string
	if authed {
		caller = strconv.FormatInt(uid, 10)
	}
	raw, err := s.oracle.Ask(ctx, oracle.Request{
		Task:     oracle.TaskAnalyzeCV,
		CallerID: caller,
		Message:  "Analyze this CV and extract key information:\n\n" + text,
	})
	if err != nil {
		respondError(c, err, analyzeFailure)
		return
	}
	analysis, err := oracle.DecodeAnalysis(raw)
	if err != nil {
		respondError(c, err, analyzeFailure)
		return
	}
	built := profile.FromAnalysis(analysis)

	resp := gin.H{
		"analysis": analysis,
		"profile":  built,
		"message":  "CV analyzed successfully",
	}
	if fromArchive {
		resp["cvObjectKey"] = key
	}
	if authed {
		if !fromArchive && s.archive != nil {
			if k, err := s.archive.Save(ctx, uid, text); err != nil {
				log.Printf("[docstore] archive CV for user %d: %v", uid, err)
			} else {
				resp["cvObjectKey"] = k
			}
		}
		up := domain.UserUpdate{
			CVText:    &text,
			Skills:    &built.Skills,
			Interests: &built.Interests,
			Goals:     &built.Goals,
		}
		if _, err := s.store.UpdateUser(ctx, uid, up); err != nil {
			log.Printf("[api] store CV profile for user %d: %v", uid, err)
		}
	}
	c.JSON(http.StatusOK, resp)
}

type chatRequest struct {
	Message string          `json:"message"`
	Context json.RawMessage `json:"context"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err, "")
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		respondError(c, domain.Validation("Message is required"), "")
		return
	}
	if ctxJSON := bytes.TrimSpace(req.Context); len(ctxJSON) > 0 && !bytes.Equal(ctxJSON, []byte("null")) {
		msg += "\n\nUser Context: " + string(ctxJSON)
	}

	var caller string
	if uid, ok := callerID(c); ok {
		caller = strconv.FormatInt(uid, 10)
	}
	reply, err := s.oracle.Ask(c.Request.Context(), oracle.Request{
		Task:     oracle.TaskChat,
		CallerID: caller,
		Message:  msg,
	})
	if err != nil {
		respondError(c, err, chatFailure)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"response":  strings.TrimSpace(reply),
		"timestamp": s.now().UTC(),
	})
}
