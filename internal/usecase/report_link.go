package usecase

import (
	"context"
)

// ShowReportLinkInput contains the parameters for the report link.
type ShowReportLinkInput struct{}

// ShowReportLinkOutput contains the spreadsheet link.
type ShowReportLinkOutput struct {
	URL string
}

// ShowReportLink is the use case for linking to the spreadsheet view behind the statistics.
type ShowReportLink struct {
	url func() (string, error)
}

// NewShowReportLink creates a new ShowReportLink use case.
// url resolves the link, typically (*domain.Config).ReportURL.
func NewShowReportLink(url func() (string, error)) *ShowReportLink {
	return &ShowReportLink{url: url}
}

// Execute returns the report link or domain.ErrNoReportLink when none is configured.
func (uc *ShowReportLink) Execute(_ context.Context, _ ShowReportLinkInput) (*ShowReportLinkOutput, error) {
	url, err := uc.url()
	if err != nil {
		return nil, err
	}
	return &ShowReportLinkOutput{URL: url}, nil
}
