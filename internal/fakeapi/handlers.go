package fakeapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/common"
	"github.com/gorilla/mux"
)

type loginData struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := GenerateToken(p.Email, s.secret, s.now(), s.tokenTTL)
	if err != nil {
		s.log.Error(r.Context(), "sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeOK(w, loginData{Token: token, Email: p.Email, FirstName: p.FirstName, LastName: p.LastName}, "Login successful")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
		FirstName       string `json:"firstName"`
		LastName        string `json:"lastName"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case !strings.Contains(req.Email, "@"):
		writeError(w, http.StatusBadRequest, "Invalid email")
		return
	case len(req.Password) < 6:
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	case req.Password != req.ConfirmPassword:
		writeError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	p := models.UserProfile{Email: req.Email, FirstName: req.FirstName, LastName: req.LastName}
	if err := s.store.CreateUser(p, req.Password); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeOK(w, nil, "Registration successful")
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Unknown addresses get the same answer.
	if s.store.HasUser(req.Email) {
		token, err := common.MakeRandHexString(16)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Internal error")
			return
		}
		s.store.PutResetToken(token, req.Email, s.now().Add(resetTokenTTL))
		s.log.Info(r.Context(), "reset token issued", "email", req.Email)
		if s.OnResetToken != nil {
			s.OnResetToken(normEmail(req.Email), token)
		}
	}

	writeOK(w, nil, "If the address is registered, a reset code has been sent")
}

func (s *Server) handleValidateResetToken(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.ResetEmail(r.URL.Query().Get("token"), s.now()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or expired token")
		return
	}
	writeOK(w, nil, "Token is valid")
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token           string `json:"token"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email, err := s.store.ResetEmail(req.Token, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or expired token")
		return
	}
	if len(req.NewPassword) < 6 || req.NewPassword != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "Invalid new password")
		return
	}
	if err := s.store.SetPassword(email, req.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or expired token")
		return
	}
	s.store.ConsumeResetToken(req.Token)

	writeOK(w, nil, "Password has been reset")
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read file")
		return
	}

	fileType := hdr.Header.Get("Content-Type")
	if fileType == "" || fileType == "application/octet-stream" {
		fileType = http.DetectContentType(data)
	}
	if mt, _, err := mime.ParseMediaType(fileType); err == nil {
		fileType = mt
	}

	rec := s.store.AddFile(emailFrom(r.Context()), hdr.Filename, fileType, data, s.now().UTC())
	writeOK(w, rec, "File uploaded successfully")
}

func (s *Server) handleMyFiles(w http.ResponseWriter, r *http.Request) {
	files := s.store.Files(emailFrom(r.Context()), mux.Vars(r)["type"])
	writeOK(w, files, "")
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrFileNotFound):
		writeError(w, http.StatusNotFound, "File not found")
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "Access denied")
	default:
		writeError(w, http.StatusInternalServerError, "Internal error")
	}
}

func (s *Server) handleContent(disposition string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, data, err := s.store.File(emailFrom(r.Context()), mux.Vars(r)["id"])
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		w.Header().Set("Content-Type", rec.FileType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": rec.OriginalFileName}))
		_, _ = w.Write(data)
	}
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	rec, _, err := s.store.File(emailFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeOK(w, rec, "")
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("newFileName"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "File name must not be empty")
		return
	}
	rec, err := s.store.RenameFile(emailFrom(r.Context()), mux.Vars(r)["id"], name)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeOK(w, rec, "File renamed successfully")
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteFile(emailFrom(r.Context()), mux.Vars(r)["id"]); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeOK(w, nil, "File deleted successfully")
}
