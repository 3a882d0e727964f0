package gdocai

//go:generate mockgen -source=gdocai.go -destination=mocks/mocks.go -package=mocks Processor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gardar/gbx/pkg/gdocai/mocks"
)

func newTestScanner(t *testing.T) (*Scanner, *mocks.MockProcessor) {
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcessor(ctrl)
	return &Scanner{Processor: proc, Config: &Config{}}, proc
}

func TestScannerScan(t *testing.T) {
	scanner, proc := newTestScanner(t)
	proc.EXPECT().Process(gomock.Any(), []byte("blatt.pdf")).Return(titlePage(), nil)

	result, err := scanner.Scan(context.Background(), []byte("blatt.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "254", result.File.Analysiert.Titelblatt.Blatt)
	assert.Equal(t, []int{1}, result.File.Seiten())
}

func TestScannerScanError(t *testing.T) {
	scanner, proc := newTestScanner(t)
	proc.EXPECT().Process(gomock.Any(), gomock.Any()).Return(nil, errors.New("quota exceeded"))

	_, err := scanner.Scan(context.Background(), []byte("blatt.pdf"))
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestScannerScanPages(t *testing.T) {
	scanner, proc := newTestScanner(t)
	scanner.Parallel = 2
	proc.EXPECT().Process(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []byte) (*documentaipb.Document, error) {
			return titlePage(), nil
		}).
		Times(3)

	result, err := scanner.ScanPages(context.Background(), [][]byte{[]byte("1"), []byte("2"), []byte("3")})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, result.File.Seiten())
	assert.Equal(t, 3, strings.Count(result.Raw.GetText(), "Amtsgericht Prenzlau"))
	assert.Equal(t, "Ludwigsburg", result.File.Analysiert.Titelblatt.GrundbuchVon)
	assert.Len(t, result.Images, 3)
}

func TestScannerScanPagesErrors(t *testing.T) {
	t.Run("failing page", func(t *testing.T) {
		scanner, proc := newTestScanner(t)
		proc.EXPECT().Process(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b []byte) (*documentaipb.Document, error) {
				if string(b) == "2" {
					return nil, errors.New("unreadable")
				}
				return titlePage(), nil
			}).
			AnyTimes()

		_, err := scanner.ScanPages(context.Background(), [][]byte{[]byte("1"), []byte("2")})
		assert.ErrorContains(t, err, "failed to process page 2")
	})

	t.Run("multi-page response", func(t *testing.T) {
		scanner, proc := newTestScanner(t)
		doc := titlePage()
		doc.Pages = append(doc.Pages, titlePage().Pages...)
		proc.EXPECT().Process(gomock.Any(), gomock.Any()).Return(doc, nil)

		_, err := scanner.ScanPages(context.Background(), [][]byte{[]byte("1")})
		assert.ErrorContains(t, err, "expected 1 page")
	})

	t.Run("no pages", func(t *testing.T) {
		scanner, _ := newTestScanner(t)
		_, err := scanner.ScanPages(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestScannerParallel(t *testing.T) {
	assert.Equal(t, DefaultParallel, (&Scanner{}).parallel())
	assert.Equal(t, 8, (&Scanner{Parallel: 8}).parallel())
	assert.IsType(t, CloudProcessor{}, NewScanner(&Config{}).Processor)
}
