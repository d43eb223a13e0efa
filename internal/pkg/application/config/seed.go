package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/diwise/api-repository/internal/pkg/application/services/content"
	"github.com/diwise/api-repository/internal/pkg/application/services/eperson"
	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/diwise/api-repository/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

type Seeder struct {
	Communities content.CommunityService
	Collections content.CollectionService
	EPersons    eperson.EPersonService
	Groups      eperson.GroupService
}

// Seed creates the permanent groups and the configured epersons. Communities
// and collections are only created when the repository has none.
func (s Seeder) Seed(ctx context.Context, seed Seed) error {
	log := logging.GetFromContext(ctx)

	admins, err := s.Groups.FindOrCreate(ctx, domain.GroupAdministrator, true)
	if err != nil {
		return err
	}
	if _, err = s.Groups.FindOrCreate(ctx, domain.GroupAnonymous, true); err != nil {
		return err
	}

	for _, p := range seed.Administrators {
		e, err := s.findOrCreatePerson(ctx, p)
		if err != nil {
			return err
		}
		if err = s.Groups.AddMember(ctx, admins.ID, e.ID); err != nil {
			return err
		}
	}

	for _, p := range seed.EPersons {
		if _, err := s.findOrCreatePerson(ctx, p); err != nil {
			return err
		}
	}

	n, err := s.Communities.CountTotal(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Debug().Msg("repository already has communities, skipping seed")
		return nil
	}

	for _, c := range seed.Communities {
		if err := s.seedCommunity(ctx, c, nil); err != nil {
			return err
		}
	}

	return nil
}

func (s Seeder) findOrCreatePerson(ctx context.Context, p Person) (*domain.EPerson, error) {
	e, err := s.EPersons.FindByEmail(ctx, p.Email)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	log := logging.GetFromContext(ctx)
	log.Info().Str("email", p.Email).Msg("creating eperson")

	return s.EPersons.Create(ctx, p.Email, p.FirstName, p.LastName, p.Password)
}

func (s Seeder) seedCommunity(ctx context.Context, c Community, parent *uuid.UUID) error {
	community, err := s.Communities.Create(ctx, c.Name, parent)
	if err != nil {
		return fmt.Errorf("failed to seed community %s: %w", c.Name, err)
	}

	for _, col := range c.Collections {
		if err = s.seedCollection(ctx, col, community.ID); err != nil {
			return err
		}
	}

	for _, sub := range c.Subcommunities {
		if err = s.seedCommunity(ctx, sub, &community.ID); err != nil {
			return err
		}
	}

	return nil
}

func (s Seeder) seedCollection(ctx context.Context, c Collection, community uuid.UUID) error {
	md := domain.Metadata{}
	md.Set("dc.title", c.Name)
	md.Set("dc.description.abstract", c.Description)
	md.Set("dc.rights", c.Rights)

	collection, err := s.Collections.Create(ctx, community, md)
	if err != nil {
		return fmt.Errorf("failed to seed collection %s: %w", c.Name, err)
	}

	if len(c.Submitters) > 0 {
		g, err := s.groupWithMembers(ctx, fmt.Sprintf("COLLECTION_%s_SUBMIT", collection.ID), c.Submitters)
		if err != nil {
			return err
		}
		collection.SubmittersGroupID = &g.ID
	}

	if len(c.Reviewers) > 0 {
		g, err := s.groupWithMembers(ctx, fmt.Sprintf("COLLECTION_%s_WORKFLOW_STEP_1", collection.ID), c.Reviewers)
		if err != nil {
			return err
		}
		collection.WorkflowGroupID = &g.ID
	}

	return s.Collections.Update(ctx, collection)
}

func (s Seeder) groupWithMembers(ctx context.Context, name string, emails []string) (*domain.Group, error) {
	g, err := s.Groups.FindOrCreate(ctx, name, false)
	if err != nil {
		return nil, err
	}

	for _, email := range emails {
		e, err := s.EPersons.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("unknown member %s of group %s: %w", email, name, err)
		}
		if err = s.Groups.AddMember(ctx, g.ID, e.ID); err != nil {
			return nil, err
		}
	}

	return g, nil
}
