// Package page provides support for query paging.
package page

import (
	"fmt"
	"net/http"
	"strconv"
)

// Page represents the requested page and rows per page.
type Page struct {
	number int
	rows   int
}

// Parse parses the request for the page and rows query string. The
// defaults are provided as well.
func Parse(r *http.Request) (Page, error) {
	values := r.URL.Query()

	number := 1
	if page := values.Get("page"); page != "" {
		var err error
		number, err = strconv.Atoi(page)
		if err != nil {
			return Page{}, fmt.Errorf("page conversion: %w", err)
		}
	}

	rowsPerPage := 10
	if rows := values.Get("rows"); rows != "" {
		var err error
		rowsPerPage, err = strconv.Atoi(rows)
		if err != nil {
			return Page{}, fmt.Errorf("rows conversion: %w", err)
		}
	}

	if number <= 0 {
		return Page{}, fmt.Errorf("page value too small, must be larger than 0")
	}

	if rowsPerPage <= 0 {
		return Page{}, fmt.Errorf("rows value too small, must be larger than 0")
	}

	if rowsPerPage > 100 {
		return Page{}, fmt.Errorf("rows value too large, must be less than 100")
	}

	p := Page{
		number: number,
		rows:   rowsPerPage,
	}

	return p, nil
}

// MustParse creates a paging value for testing.
func MustParse(number string, rowsPerPage string) Page {
	n, _ := strconv.Atoi(number)
	r, _ := strconv.Atoi(rowsPerPage)

	return Page{
		number: n,
		rows:   r,
	}
}

// String implements the stringer interface.
func (p Page) String() string {
	return fmt.Sprintf("page: %d rows: %d", p.number, p.rows)
}

// Number returns the page number.
func (p Page) Number() int {
	return p.number
}

// RowsPerPage returns the rows per page.
func (p Page) RowsPerPage() int {
	return p.rows
}
