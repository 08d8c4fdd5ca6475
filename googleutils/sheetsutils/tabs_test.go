package sheetsutils_test

import (
	"context"
	"testing"
	"time"

	"github.com/lac5q/creative-ads-repository/googleutils"
	"github.com/lac5q/creative-ads-repository/googleutils/drivetest"
	"github.com/lac5q/creative-ads-repository/googleutils/sheetsutils"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/drive/v3"
)

func Test_TabTitles(t *testing.T) {
	server := drivetest.New(t)
	server.AddFile(&drive.File{Id: "sheet-1", Name: "Ad performance"}, "Summary", "Raw data", "Pivot")
	server.AddFile(&drive.File{Id: "sheet-2", Name: "Empty"})

	t.Run("Succeed", func(t *testing.T) {
		assertions := assert.New(t)

		ctx, cancel := context.WithTimeout(context.TODO(), time.Minute)
		defer cancel()

		svc, err := server.SheetsService(ctx)
		if !assertions.Nil(err, "failed to create sheets service") {
			return
		}

		titles, err := sheetsutils.TabTitles(ctx, svc, "sheet-1")
		if !assertions.Nil(err, "failed to get tab titles") {
			return
		}
		assertions.Equal([]string{"Summary", "Raw data", "Pivot"}, titles)

		titles, err = sheetsutils.TabTitles(ctx, svc, "sheet-2")
		assertions.Nil(err)
		assertions.Empty(titles)
	})
	t.Run("Not found", func(t *testing.T) {
		assertions := assert.New(t)

		svc, err := server.SheetsService(context.TODO())
		if !assertions.Nil(err, "failed to create sheets service") {
			return
		}

		_, err = sheetsutils.TabTitles(context.TODO(), svc, "missing")
		assertions.True(googleutils.IsNotFound(err))
	})
}
