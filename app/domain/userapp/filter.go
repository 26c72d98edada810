package userapp

import (
	"net/http"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/userbus"
	"github.com/planora/planora/business/types/name"
)

func parseFilter(r *http.Request) (userbus.QueryFilter, error) {
	values := r.URL.Query()

	var fieldErrors errs.FieldErrors
	var filter userbus.QueryFilter

	if v := values.Get("user_id"); v != "" {
		id, err := uuid.Parse(v)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("user_id", err)
		}
	}

	if v := values.Get("name"); v != "" {
		nme, err := name.Parse(v)
		switch err {
		case nil:
			filter.Name = &nme
		default:
			fieldErrors.Add("name", err)
		}
	}

	if v := values.Get("email"); v != "" {
		addr, err := mail.ParseAddress(v)
		switch err {
		case nil:
			filter.Email = addr
		default:
			fieldErrors.Add("email", err)
		}
	}

	if v := values.Get("start_created_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		switch err {
		case nil:
			filter.StartCreatedAt = &t
		default:
			fieldErrors.Add("start_created_date", err)
		}
	}

	if v := values.Get("end_created_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		switch err {
		case nil:
			filter.EndCreatedAt = &t
		default:
			fieldErrors.Add("end_created_date", err)
		}
	}

	if fieldErrors != nil {
		return userbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
