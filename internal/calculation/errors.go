package calculation

import "errors"

// ErrTaxYearNotFound is returned when a calculator is asked for a year key the tax tables do not contain.
var ErrTaxYearNotFound = errors.New("tax year not found")

// ErrNoTaxTables is returned when a calculator is called without reference data.
var ErrNoTaxTables = errors.New("no tax tables supplied")
