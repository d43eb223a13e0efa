package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/diwise/api-repository/internal/pkg/application/rest"
	"github.com/diwise/api-repository/internal/pkg/application/services/content"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/assetstore"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

func NewRetrieveBitstreamContentHandler(logger zerolog.Logger, svc content.BitstreamService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-bitstream-content")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		id, err := uuid.Parse(pathParam("id")(r))
		if err != nil {
			writeError(w, r, log, rest.ErrNotFound)
			return
		}

		b, err := svc.Find(ctx, id)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				err = rest.ErrNotFound
			}
			writeError(w, r, log, err)
			return
		}

		data, err := svc.Retrieve(ctx, b)
		if err != nil {
			if errors.Is(err, assetstore.ErrNotFound) {
				log.Error().Err(err).Str("bitstream", b.ID.String()).Msg("bitstream content is missing from the asset store")
			}
			writeError(w, r, log, err)
			return
		}
		defer data.Close()

		format := b.Format
		if format == "" {
			format = "application/octet-stream"
		}

		w.Header().Set("Content-Type", format)
		w.Header().Set("Content-Length", strconv.FormatInt(b.SizeBytes, 10))
		w.Header().Set("X-Content-Type-Options", "nosniff")

		disposition := "attachment"
		if isInlineFormat(format) {
			disposition = "inline"
		}
		params := map[string]string{}
		if name := b.Name(); name != "" {
			params["filename"] = name
		}
		w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, params))
		w.WriteHeader(http.StatusOK)

		if _, err = io.Copy(w, data); err != nil {
			log.Error().Err(err).Msg("failed to stream bitstream content")
		}
	})
}

// formats a browser may render in place of a download
var inlineFormats = []string{"application/pdf", "image/gif", "image/jpeg", "image/png", "text/plain"}

func isInlineFormat(format string) bool {
	mediaType, _, err := mime.ParseMediaType(format)
	if err != nil {
		return false
	}
	return slices.Contains(inlineFormats, strings.ToLower(mediaType))
}
