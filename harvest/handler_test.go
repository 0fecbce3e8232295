package harvest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/socialstats"
	"github.com/fwojciec/socialstats/harvest"
	"github.com/fwojciec/socialstats/mock"
	"github.com/stretchr/testify/assert"
)

func TestHandler_Handle(t *testing.T) {
	t.Parallel()

	t.Run("check reports found content", func(t *testing.T) {
		t.Parallel()

		preview := []*socialstats.Record{{ID: "A"}}
		h := &harvest.Handler{Content: &mock.ContentService{
			CheckContentFn: func(context.Context) (*socialstats.CheckResult, error) {
				return &socialstats.CheckResult{
					Found:    true,
					Platform: socialstats.PlatformTikTok,
					PageType: socialstats.ContextFeed,
					Preview:  preview,
					Total:    12,
				}, nil
			},
		}}

		resp := h.Handle(context.Background(), harvest.Request{Action: harvest.ActionCheckContent})

		assert.Equal(t, harvest.Response{
			Success:     true,
			Platform:    socialstats.PlatformTikTok,
			PageType:    socialstats.ContextFeed,
			PreviewData: preview,
			TotalItems:  12,
		}, resp)
	})

	t.Run("check reports missing content", func(t *testing.T) {
		t.Parallel()

		h := &harvest.Handler{Content: &mock.ContentService{
			CheckContentFn: func(context.Context) (*socialstats.CheckResult, error) {
				return &socialstats.CheckResult{
					Platform: socialstats.PlatformInstagram,
					PageType: socialstats.ContextUnsupported,
				}, nil
			},
		}}

		resp := h.Handle(context.Background(), harvest.Request{Action: harvest.ActionCheckContent})

		assert.False(t, resp.Success)
		assert.Equal(t, "No content found on this page. Open a profile or feed and try again.", resp.Message)
		assert.Equal(t, socialstats.ContextUnsupported, resp.PageType)
	})

	t.Run("sort passes the criterion through", func(t *testing.T) {
		t.Parallel()

		var got socialstats.SortCriterion
		h := &harvest.Handler{Content: &mock.ContentService{
			SortFn: func(_ context.Context, c socialstats.SortCriterion) (*socialstats.SortResult, error) {
				got = c
				return &socialstats.SortResult{Count: 4, SortName: "views"}, nil
			},
		}}

		resp := h.Handle(context.Background(), harvest.Request{Action: harvest.ActionSort, SortCriteria: "views"})

		assert.True(t, resp.Success)
		assert.Equal(t, socialstats.SortViews, got)
		assert.Equal(t, 4, resp.ItemCount)
		assert.Equal(t, "views", resp.SortName)
	})

	t.Run("sort on an empty page reports the message", func(t *testing.T) {
		t.Parallel()

		h := &harvest.Handler{Content: &mock.ContentService{
			SortFn: func(context.Context, socialstats.SortCriterion) (*socialstats.SortResult, error) {
				return nil, socialstats.Errorf(socialstats.EEMPTY, "Content has not been collected yet.")
			},
		}}

		resp := h.Handle(context.Background(), harvest.Request{Action: harvest.ActionSort, SortCriteria: "likes"})

		assert.Equal(t, harvest.Response{Success: false, Message: "Content has not been collected yet."}, resp)
	})

	t.Run("export normalizes the format", func(t *testing.T) {
		t.Parallel()

		var got socialstats.ExportFormat
		h := &harvest.Handler{Content: &mock.ContentService{
			ExportFn: func(_ context.Context, f socialstats.ExportFormat) (*socialstats.Export, error) {
				got = f
				return &socialstats.Export{
					Payload:     []byte("<html></html>"),
					Filename:    "instagram_chef_2025-03-10T12-00-00-000Z.xlsx",
					ContentType: "application/vnd.ms-excel",
					Count:       2,
				}, nil
			},
		}}

		resp := h.Handle(context.Background(), harvest.Request{Action: harvest.ActionExport, Format: "xlsx"})

		assert.True(t, resp.Success)
		assert.Equal(t, socialstats.FormatExcel, got)
		assert.Equal(t, "<html></html>", resp.Data)
		assert.Equal(t, "instagram_chef_2025-03-10T12-00-00-000Z.xlsx", resp.Filename)
		assert.Equal(t, "application/vnd.ms-excel", resp.ContentType)
		assert.Equal(t, 2, resp.ItemCount)
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		t.Parallel()

		h := &harvest.Handler{Content: &mock.ContentService{
			ExportFn: func(context.Context, socialstats.ExportFormat) (*socialstats.Export, error) {
				return nil, errors.New("disk full")
			},
		}}

		resp := h.Handle(context.Background(), harvest.Request{Action: harvest.ActionExport})

		assert.False(t, resp.Success)
		assert.Equal(t, "Internal error.", resp.Message)
	})

	t.Run("unknown action", func(t *testing.T) {
		t.Parallel()

		h := &harvest.Handler{Content: &mock.ContentService{}}

		resp := h.Handle(context.Background(), harvest.Request{Action: "refresh"})

		assert.Equal(t, harvest.Response{Success: false, Message: "Unknown action: refresh"}, resp)
	})
}
