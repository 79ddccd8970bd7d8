package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/seantiz/directory/internal/directory"
	"github.com/seantiz/directory/internal/model"
)

// maxFormMemory bounds the part of a multipart body held in memory; larger
// files spill to temporary files.
const maxFormMemory = 32 << 20

const msgNotEnabled = "Database or S3 not enabled."

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type indexPage struct {
	Employees  []model.Employee
	BucketName string
}

// handleIndex renders the employee listing. Store failures render an empty
// listing rather than an error page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	res := s.directory.List(r.Context())
	if res.Err != nil {
		s.logger.Debug("rendering empty listing", "outcome", res.Outcome, "error", res.Err)
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexPage{Employees: res.Employees, BucketName: s.bucket}); err != nil {
		s.logger.Error("render index", "error", err)
		s.writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

// handleAddEmployee stores a submitted employee and redirects to the listing.
func (s *Server) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	if !s.directory.RecordsEnabled() || !s.directory.PhotosEnabled() {
		s.writeText(w, http.StatusBadRequest, msgNotEnabled)
		return
	}

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			s.writeText(w, http.StatusBadRequest, "invalid form: "+err.Error())
			return
		}
		if err := r.ParseForm(); err != nil {
			s.writeText(w, http.StatusBadRequest, "invalid form: "+err.Error())
			return
		}
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	in := directory.NewEmployee{
		Name:     r.PostFormValue("name"),
		Title:    r.PostFormValue("title"),
		Location: r.PostFormValue("location"),
		Badges:   r.PostFormValue("badges"),
	}

	if r.MultipartForm != nil {
		file, header, err := r.FormFile("photo")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			s.writeText(w, http.StatusBadRequest, "invalid photo: "+err.Error())
			return
		default:
			defer file.Close()
			in.Photo = &directory.Photo{Filename: header.Filename, Body: file}
		}
	}

	if _, err := s.directory.Add(r.Context(), in); err != nil {
		if errors.Is(err, directory.ErrNotEnabled) {
			s.writeText(w, http.StatusBadRequest, msgNotEnabled)
			return
		}
		s.logger.Error("add employee", "error", err)
		s.writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}
