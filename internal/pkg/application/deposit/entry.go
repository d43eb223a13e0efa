package deposit

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/api-repository/internal/pkg/sword"
	"github.com/diwise/api-repository/internal/pkg/sword/atom"
	"github.com/diwise/api-repository/internal/pkg/sword/base"
	"github.com/google/uuid"
)

const atomEntryType string = "application/atom+xml;type=entry"

// canRead allows the entry of an item that is not archived yet to be read by
// its submitter, whether authenticated or deposited for, and by administrators.
func (d *depositSvc) canRead(ctx context.Context, sc *Context, item *domain.Item) (bool, error) {
	if item.IsReadableBy(sc.Authenticated, false) {
		return true, nil
	}
	if sc.OnBehalfOf != nil && item.IsReadableBy(sc.OnBehalfOf, false) {
		return true, nil
	}
	return d.svc.Groups.IsAdmin(ctx, sc.Authenticated.ID)
}

func (d *depositSvc) Entry(ctx context.Context, sc *Context, itemID string) (*sword.Entry, error) {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, newError(base.ErrorBadRequest, http.StatusNotFound, "no item with id %s", itemID)
	}

	item, err := d.svc.Items.Find(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, newError(base.ErrorBadRequest, http.StatusNotFound, "no item with id %s", itemID)
	}
	if err != nil {
		return nil, err
	}

	readable, err := d.canRead(ctx, sc, item)
	if err != nil {
		return nil, err
	}
	if !readable {
		return nil, newError(base.ErrorBadRequest, http.StatusForbidden, "not allowed to read item %s", itemID)
	}

	var bitstream *domain.Bitstream

	bundles, err := d.svc.Bundles.FindByItem(ctx, item.ID, 10, 0)
	if err != nil {
		return nil, err
	}

	for _, b := range bundles {
		if b.Name() != domain.BundleOriginal {
			continue
		}

		bitstreams, err := d.svc.Bitstreams.FindByBundle(ctx, b.ID, 1, 0)
		if err != nil {
			return nil, err
		}
		if len(bitstreams) > 0 {
			bitstream = &bitstreams[0]
		}
		break
	}

	entry := d.entry(item, bitstream, sc)
	entry.Treatment = sword.NewTreatment(d.settings.Treatment)

	return entry, nil
}

func (d *depositSvc) newEntry(id, title string, updated time.Time, sc *Context) *sword.Entry {
	e := sword.NewEntry()

	e.ID = atom.NewID(id)
	e.Title = atom.NewTitle(title)
	e.Updated = atom.NewUpdated(updated.UTC().Format(time.RFC3339))
	e.Generator = atom.NewGenerator(d.settings.BaseURL, sword.Version)

	if sc != nil && sc.Authenticated != nil {
		e.Authors = append(e.Authors, atom.NewAuthor(sc.Authenticated.FullName(), "", sc.Authenticated.Email))
	}
	if sc != nil && sc.OnBehalfOf != nil {
		e.Contributors = append(e.Contributors, atom.NewContributor(sc.OnBehalfOf.FullName(), "", sc.OnBehalfOf.Email))
	}

	return e
}

func (d *depositSvc) entry(item *domain.Item, b *domain.Bitstream, sc *Context) *sword.Entry {
	id := item.Metadata.First("dc.identifier.uri")
	if id == "" {
		id = "urn:uuid:" + item.ID.String()
	}

	title := item.Name()
	if title == "" {
		title = "Untitled"
	}

	e := d.newEntry(id, title, item.LastModified, sc)

	if published := item.Metadata.First("dc.date.available"); published != "" {
		e.Published = atom.NewPublished(published)
	}
	if abstract := item.Metadata.First("dc.description.abstract"); abstract != "" {
		e.Summary = atom.NewSummary(abstract)
	}
	if rights := item.Metadata.First("dc.rights"); rights != "" {
		e.Rights = atom.NewRights(rights)
	}
	for _, subject := range item.Metadata.Values("dc.subject") {
		e.Categories = append(e.Categories, atom.NewCategory(subject))
	}

	if b != nil {
		href := d.contentURL(b)
		e.Content = atom.NewContent(href, b.Format)
		e.Links = append(e.Links, atom.NewLink(href, "edit-media", b.Format))
	}

	e.Links = append(e.Links, atom.NewLink(d.atomURL(item), "edit", atomEntryType))

	return e
}

func (d *depositSvc) noOpEntry(sc *Context, req Request) *sword.Entry {
	return d.newEntry("urn:uuid:"+uuid.NewString(), titleFromFilename(req.Filename), time.Now(), sc)
}

func (d *depositSvc) addSwordElements(e *sword.Entry, req Request, verbose *processLog) {
	e.Treatment = sword.NewTreatment(d.settings.Treatment)
	e.NoOp = sword.NewNoOp(req.NoOp)

	if req.Packaging != "" {
		e.Packaging = sword.NewPackaging(req.Packaging)
	}
	if req.UserAgent != "" {
		e.UserAgent = sword.NewUserAgent(req.UserAgent)
	}
	if req.Verbose {
		e.VerboseDescription = sword.NewVerboseDescription(verbose.String())
	}
}
