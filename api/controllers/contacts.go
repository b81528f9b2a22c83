package controllers

import (
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/OmerAlfiel/Shahen-website/api/middleware"
	"github.com/OmerAlfiel/Shahen-website/api/responses"
	"github.com/OmerAlfiel/Shahen-website/api/validators"
	"github.com/OmerAlfiel/Shahen-website/internal/contacts"
	"github.com/OmerAlfiel/Shahen-website/pkg/enums"
	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
	"github.com/OmerAlfiel/Shahen-website/pkg/pagination"
)

// SubmitContact accepts the public contact form.
func SubmitContact(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "contacts service unavailable"))
			return
		}

		var form contacts.SubmitForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), contacts.Submission{
			Form:      form,
			IPAddress: middleware.ClientIP(r),
			UserAgent: r.UserAgent(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "Contact form submitted successfully", result)
	}
}

// ListContacts returns a filtered, sorted page of submissions.
func ListContacts(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "contacts service unavailable"))
			return
		}

		page, err := pageFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := contacts.ListParams{
			Status:    enums.ContactStatus(strings.TrimSpace(r.URL.Query().Get("status"))),
			SortBy:    validators.ParseQueryChoice(r, "sortBy", "createdAt", contacts.SortFields()...),
			SortOrder: validators.ParseQueryChoice(r, "sortOrder", contacts.SortDesc, contacts.SortAsc, contacts.SortDesc),
			Page:      page,
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Contact submissions retrieved successfully", result)
	}
}

// GetContact returns one submission.
func GetContact(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "contacts service unavailable"))
			return
		}

		id, err := contactIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Contact submission retrieved successfully", contact)
	}
}

// UpdateContactStatus moves a submission to a new status.
func UpdateContactStatus(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "contacts service unavailable"))
			return
		}

		id, err := contactIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var update contacts.StatusUpdate
		if err := validators.DecodeJSONBody(r, &update); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := svc.UpdateStatus(r.Context(), id, update)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Contact status updated successfully", contact)
	}
}

// DeleteContact removes a submission.
func DeleteContact(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "contacts service unavailable"))
			return
		}

		id, err := contactIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Contact deleted successfully", nil)
	}
}

const maxSearchTermLength = 100

// SearchContacts matches q against name and message.
func SearchContacts(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "contacts service unavailable"))
			return
		}

		term := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchTermLength)
		if term == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Search term is required"))
			return
		}

		page, err := pageFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Search(r.Context(), contacts.SearchParams{Term: term, Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Search results retrieved successfully", result)
	}
}

// ContactStats summarises the backlog.
func ContactStats(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "contacts service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Contact statistics retrieved successfully", stats)
	}
}

// contactIDParam reads {id}. Ids that are not UUIDs cannot exist, so they
// report not found.
func contactIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "ID parameter is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Contact submission not found")
	}
	return id, nil
}

func pageFromQuery(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	offset, err := validators.ParseQueryInt(r, "offset", 0, 0, math.MaxInt32)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Offset: offset}, nil
}
