package harvest

import (
	"context"

	"github.com/fwojciec/socialstats"
)

// Message actions understood by Handler.
const (
	ActionCheckContent = "checkPageContent"
	ActionSort         = "sortContent"
	ActionExport       = "exportData"
)

// Request is a message from the request/response layer.
type Request struct {
	Action       string `json:"action"`
	SortCriteria string `json:"sortCriteria,omitempty"`
	Format       string `json:"format,omitempty"`
}

// Response is the reply to a Request. Failures carry Success=false and a
// human-readable Message.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	Platform    socialstats.Platform    `json:"platform,omitempty"`
	PageType    socialstats.PageContext `json:"pageType,omitempty"`
	PreviewData []*socialstats.Record   `json:"previewData,omitempty"`
	TotalItems  int                     `json:"totalItems,omitempty"`

	ItemCount int    `json:"itemCount,omitempty"`
	SortName  string `json:"sortName,omitempty"`

	Data        string `json:"data,omitempty"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// Handler dispatches messages to a page view's content service.
type Handler struct {
	Content socialstats.ContentService
}

// Handle answers req. It never returns an error: failures are reported in
// the response.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	switch req.Action {
	case ActionCheckContent:
		res, err := h.Content.CheckContent(ctx)
		if err != nil {
			return failure(err)
		}
		if !res.Found {
			return Response{
				Success:  false,
				Message:  "No content found on this page. Open a profile or feed and try again.",
				Platform: res.Platform,
				PageType: res.PageType,
			}
		}
		return Response{
			Success:     true,
			Platform:    res.Platform,
			PageType:    res.PageType,
			PreviewData: res.Preview,
			TotalItems:  res.Total,
		}

	case ActionSort:
		res, err := h.Content.Sort(ctx, socialstats.SortCriterion(req.SortCriteria))
		if err != nil {
			return failure(err)
		}
		return Response{
			Success:     true,
			ItemCount:   res.Count,
			SortName:    res.SortName,
			PreviewData: res.Preview,
		}

	case ActionExport:
		res, err := h.Content.Export(ctx, socialstats.ParseExportFormat(req.Format))
		if err != nil {
			return failure(err)
		}
		return Response{
			Success:     true,
			Data:        string(res.Payload),
			Filename:    res.Filename,
			ContentType: res.ContentType,
			ItemCount:   res.Count,
		}
	}
	return Response{Success: false, Message: "Unknown action: " + req.Action}
}

func failure(err error) Response {
	return Response{Success: false, Message: socialstats.ErrorMessage(err)}
}
