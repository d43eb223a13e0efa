package deposit

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-repository/internal/pkg/sword"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
)

const defaultFilename string = "package"

type processLog struct {
	b strings.Builder
}

func (p *processLog) note(format string, args ...any) {
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteString("\n")
}

func (p *processLog) String() string {
	return p.b.String()
}

func (d *depositSvc) Deposit(ctx context.Context, sc *Context, req Request) (*sword.DepositResponse, error) {
	var err error
	ctx, span := tracer.Start(ctx, "sword-deposit")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)
	verbose := &processLog{}

	if req.Filename == "" {
		req.Filename = defaultFilename
	}

	collection, err := d.resolveCollection(ctx, req.Collection)
	if err != nil {
		return nil, err
	}
	verbose.note("Deposit target is collection %s (%s)", collection.Name(), collection.ID)

	allowed, err := d.canSubmitTo(ctx, sc, collection)
	if err != nil {
		return nil, err
	}
	if !allowed {
		err = newError(base.ErrorBadRequest, http.StatusForbidden, "not allowed to deposit into collection %s", collection.ID)
		return nil, err
	}

	target := d.swordCollection(collection)

	if req.ContentType == "" || !target.AcceptsMediaType(req.ContentType) {
		err = newError(base.ErrorContent, http.StatusUnsupportedMediaType, "unacceptable content type in deposit request: %s", req.ContentType)
		return nil, err
	}
	if req.Packaging != "" && !target.AcceptsPackaging(req.Packaging) {
		err = newError(base.ErrorContent, http.StatusUnsupportedMediaType, "unacceptable packaging type in deposit request: %s", req.Packaging)
		return nil, err
	}
	verbose.note("Content type %s and packaging %q are accepted", req.ContentType, req.Packaging)

	data, err := d.readBody(req)
	if err != nil {
		return nil, err
	}
	verbose.note("Received %d bytes", len(data))

	if req.MD5 != "" {
		sum := md5.Sum(data)
		if !strings.EqualFold(strings.TrimSpace(req.MD5), hex.EncodeToString(sum[:])) {
			err = newError(base.ErrorChecksumMismatch, http.StatusPreconditionFailed, "the checksum of the received content does not match %s", req.MD5)
			return nil, err
		}
		verbose.note("Content-MD5 checksum verified")
	}

	if req.NoOp {
		verbose.note("No-Op deposit, nothing was stored")
		entry := d.noOpEntry(sc, req)
		d.addSwordElements(entry, req, verbose)

		log.Info().Str("collection", collection.ID.String()).Msg("no-op deposit")
		return sword.NewDepositResponse(http.StatusAccepted, entry), nil
	}

	md := d.extractMetadata(ctx, req, data, verbose)

	ws, item, err := d.svc.WorkspaceItems.Create(ctx, collection.ID, sc.Submitter().ID, md)
	if err != nil {
		return nil, err
	}
	verbose.note("Created item %s", item.ID)

	itemID := item.ID
	defer func() {
		if err != nil {
			d.discard(ctx, itemID)
		}
	}()

	bundle, err := d.svc.Bundles.Create(ctx, item.ID, domain.BundleOriginal)
	if err != nil {
		return nil, err
	}

	bitstream, err := d.svc.Bitstreams.Create(ctx, bundle.ID, req.Filename, req.ContentType, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	verbose.note("Stored %s as bitstream %s in bundle %s", req.Filename, bitstream.ID, domain.BundleOriginal)

	item, err = d.svc.Items.Install(ctx, ws)
	if err != nil {
		return nil, err
	}

	status := http.StatusCreated
	if item.InArchive {
		verbose.note("Item installed with handle %s", item.Handle)
	} else {
		status = http.StatusAccepted
		verbose.note("Item submitted to the workflow of the collection")
	}

	entry := d.entry(item, bitstream, sc)
	d.addSwordElements(entry, req, verbose)

	resp := sword.NewDepositResponse(status, entry)
	resp.Location = d.atomURL(item)

	log.Info().Str("item", item.ID.String()).Str("collection", collection.ID.String()).Int("status", status).Msg("deposit complete")

	return resp, nil
}

// discard removes what a failed deposit has stored so far.
func (d *depositSvc) discard(ctx context.Context, item uuid.UUID) {
	if err := d.svc.Items.Delete(ctx, item); err != nil {
		log := logging.GetFromContext(ctx)
		log.Error().Err(err).Str("item", item.String()).Msg("failed to remove the item of a failed deposit")
	}
}

func (d *depositSvc) resolveCollection(ctx context.Context, ref string) (*domain.Collection, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, newError(base.ErrorBadRequest, http.StatusBadRequest, "no deposit target was given")
	}

	c, err := d.svc.Collections.FindByHandleOrID(ctx, ref)
	if errors.Is(err, database.ErrNotFound) {
		return nil, newError(base.ErrorBadRequest, http.StatusNotFound, "the deposit target %s does not exist", ref)
	}

	return c, err
}

// readBody reads the deposited content, refusing more than the configured maximum.
func (d *depositSvc) readBody(req Request) ([]byte, error) {
	limit := d.settings.MaxUploadSize
	tooLarge := newError(base.MaxUploadSizeExceeded, http.StatusRequestEntityTooLarge, "the deposit exceeds the maximum upload size of %d bytes", limit)

	if limit > 0 && req.ContentLength > limit {
		return nil, tooLarge
	}

	if req.Body == nil {
		return []byte{}, nil
	}

	r := req.Body
	if limit > 0 {
		r = io.LimitReader(req.Body, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(base.ErrorBadRequest, http.StatusBadRequest, "failed to read deposit: %s", err.Error())
	}

	if limit > 0 && int64(len(data)) > limit {
		return nil, tooLarge
	}

	return data, nil
}

func (d *depositSvc) extractMetadata(ctx context.Context, req Request, data []byte, verbose *processLog) domain.Metadata {
	md := domain.Metadata{}

	if d.settings.ExtractMetadata && d.extractor != nil && isPDF(req) {
		doc, err := d.extractor.ProcessHeader(ctx, req.Filename, bytes.NewReader(data))
		if err != nil {
			log := logging.GetFromContext(ctx)
			log.Warn().Err(err).Str("filename", req.Filename).Msg("metadata extraction failed")
			verbose.note("Metadata extraction failed: %s", err.Error())
		} else {
			md = doc.Metadata()
			verbose.note("Extracted %d metadata fields from the document header", len(md))
		}
	}

	if md.First("dc.title") == "" && d.settings.AllowFilenameTitle {
		md.Set("dc.title", titleFromFilename(req.Filename))
		verbose.note("Title taken from the filename")
	}

	return md
}

func isPDF(req Request) bool {
	ct := strings.ToLower(strings.TrimSpace(req.ContentType))
	return strings.HasPrefix(ct, "application/pdf") || strings.HasSuffix(strings.ToLower(req.Filename), ".pdf")
}

func titleFromFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if ext := path.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
}
