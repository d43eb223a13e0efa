package deposit

import (
	"context"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/sword"
	"github.com/diwise/api-repository/internal/pkg/sword/atom"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

const collectionPageSize int = 100

func (d *depositSvc) ServiceDocument(ctx context.Context, sc *Context) (*sword.ServiceDocument, error) {
	var err error
	ctx, span := tracer.Start(ctx, "sword-service-document")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	service := sword.NewService(sword.Version, true, true)
	service.Generator = atom.NewGenerator(d.settings.BaseURL, sword.Version)
	if d.settings.MaxUploadSize > 0 {
		service.MaxUploadSize = sword.NewMaxUploadSize(int(d.settings.MaxUploadSize / 1024))
	}

	workspace := sword.NewWorkspace(d.settings.SiteName)
	service.AddWorkspace(workspace)

	for offset := 0; ; offset += collectionPageSize {
		var collections []domain.Collection

		collections, err = d.svc.Collections.FindAll(ctx, collectionPageSize, offset)
		if err != nil {
			return nil, err
		}

		for i := range collections {
			c := &collections[i]

			var allowed bool
			if allowed, err = d.canSubmitTo(ctx, sc, c); err != nil {
				return nil, err
			}
			if allowed {
				workspace.AddCollection(d.swordCollection(c))
			}
		}

		if len(collections) < collectionPageSize {
			break
		}
	}

	log := logging.GetFromContext(ctx)
	log.Debug().Int("collections", len(workspace.Collections)).Msg("built service document")

	return sword.NewServiceDocument(service), nil
}

// swordCollection describes c as a deposit target.
func (d *depositSvc) swordCollection(c *domain.Collection) *sword.Collection {
	title := c.Name()
	if title == "" {
		title = c.ID.String()
	}

	sc := sword.NewCollection(d.depositURL(c), title)
	sc.AddAccepts(d.settings.Accepts...)

	for _, p := range d.settings.AcceptPackaging {
		sc.AddAcceptPackaging(p.Format, p.Quality)
	}

	policy := c.Metadata.First("dc.rights")
	if policy == "" {
		policy = d.settings.DefaultPolicy
	}
	if policy != "" {
		sc.CollectionPolicy = sword.NewCollectionPolicy(policy)
	}

	if abstract := c.Metadata.First("dc.description.abstract"); abstract != "" {
		sc.Abstract = sword.NewAbstract(abstract)
	}

	sc.Treatment = sword.NewTreatment(d.settings.Treatment)
	sc.Mediation = sword.NewMediation(d.settings.Mediation)

	return sc
}
