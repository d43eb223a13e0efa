package rest

import (
	"strconv"
	"strings"
	"time"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"github.com/google/uuid"
)

type Link struct {
	Href string `json:"href"`
}

type Links map[string]Link

type DSpaceObjectRest struct {
	ID       string          `json:"id"`
	UUID     string          `json:"uuid"`
	Name     string          `json:"name"`
	Handle   string          `json:"handle,omitempty"`
	Metadata domain.Metadata `json:"metadata"`
	Type     string          `json:"type"`
	Links    Links           `json:"_links"`
}

type CommunityRest struct {
	DSpaceObjectRest
}

type CollectionRest struct {
	DSpaceObjectRest
}

type ItemRest struct {
	DSpaceObjectRest
	InArchive    bool   `json:"inArchive"`
	Discoverable bool   `json:"discoverable"`
	Withdrawn    bool   `json:"withdrawn"`
	LastModified string `json:"lastModified"`
	EntityType   string `json:"entityType,omitempty"`
}

type BundleRest struct {
	DSpaceObjectRest
}

type CheckSumRest struct {
	Value             string `json:"value"`
	CheckSumAlgorithm string `json:"checkSumAlgorithm"`
}

type BitstreamRest struct {
	DSpaceObjectRest
	BundleName string       `json:"bundleName,omitempty"`
	SizeBytes  int64        `json:"sizeBytes"`
	CheckSum   CheckSumRest `json:"checkSum"`
	SequenceID int          `json:"sequenceId"`
	Format     string       `json:"format"`
}

type EPersonRest struct {
	DSpaceObjectRest
	Email          string `json:"email"`
	NetID          string `json:"netid,omitempty"`
	CanLogIn       bool   `json:"canLogIn"`
	SelfRegistered bool   `json:"selfRegistered"`
	LastActive     string `json:"lastActive,omitempty"`
}

type GroupRest struct {
	ID        string `json:"id"`
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Permanent bool   `json:"permanent"`
	Type      string `json:"type"`
	Links     Links  `json:"_links"`
}

type WorkspaceItemRest struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Links Links  `json:"_links"`
}

type WorkflowItemRest struct {
	ID    int    `json:"id"`
	State int    `json:"state"`
	Type  string `json:"type"`
	Links Links  `json:"_links"`
}

// Converter turns domain objects into rest resources with links below baseURL.
type Converter struct {
	baseURL string
}

func NewConverter(baseURL string) Converter {
	return Converter{baseURL: strings.TrimSuffix(baseURL, "/") + "/api"}
}

func (c Converter) href(category, name, id string, sub ...string) string {
	parts := append([]string{c.baseURL, category, name, id}, sub...)
	return strings.Join(parts, "/")
}

func (c Converter) dso(d *domain.DSO, t, category, name string) DSpaceObjectRest {
	md := d.Metadata
	if md == nil {
		md = domain.Metadata{}
	}

	id := d.ID.String()

	return DSpaceObjectRest{
		ID:       id,
		UUID:     id,
		Name:     d.Name(),
		Handle:   d.Handle,
		Metadata: md,
		Type:     t,
		Links:    Links{"self": {Href: c.href(category, name, id)}},
	}
}

func (c Converter) Community(m *domain.Community) CommunityRest {
	r := CommunityRest{c.dso(&m.DSO, "community", "core", "communities")}
	id := m.ID.String()

	r.Links["collections"] = Link{Href: c.href("core", "communities", id, "collections")}
	r.Links["subcommunities"] = Link{Href: c.href("core", "communities", id, "subcommunities")}
	if m.ParentID != nil {
		r.Links["parentCommunity"] = Link{Href: c.href("core", "communities", m.ParentID.String())}
	}

	return r
}

func (c Converter) Collection(m *domain.Collection) CollectionRest {
	r := CollectionRest{c.dso(&m.DSO, "collection", "core", "collections")}
	r.Links["parentCommunity"] = Link{Href: c.href("core", "communities", m.CommunityID.String())}
	return r
}

func (c Converter) Item(m *domain.Item) ItemRest {
	r := ItemRest{
		DSpaceObjectRest: c.dso(&m.DSO, "item", "core", "items"),
		InArchive:        m.InArchive,
		Discoverable:     m.Discoverable,
		Withdrawn:        m.Withdrawn,
		LastModified:     m.LastModified.UTC().Format(time.RFC3339),
		EntityType:       m.EntityType,
	}

	r.Links["bundles"] = Link{Href: c.href("core", "items", m.ID.String(), "bundles")}
	r.Links["owningCollection"] = Link{Href: c.href("core", "collections", m.OwningCollectionID.String())}

	return r
}

func (c Converter) Bundle(m *domain.Bundle) BundleRest {
	r := BundleRest{c.dso(&m.DSO, "bundle", "core", "bundles")}
	r.Links["bitstreams"] = Link{Href: c.href("core", "bundles", m.ID.String(), "bitstreams")}
	r.Links["item"] = Link{Href: c.href("core", "items", m.ItemID.String())}
	return r
}

func (c Converter) Bitstream(m *domain.Bitstream) BitstreamRest {
	r := BitstreamRest{
		DSpaceObjectRest: c.dso(&m.DSO, "bitstream", "core", "bitstreams"),
		SizeBytes:        m.SizeBytes,
		CheckSum:         CheckSumRest{Value: m.Checksum, CheckSumAlgorithm: m.ChecksumAlgorithm},
		SequenceID:       m.SequenceID,
		Format:           m.Format,
	}

	r.Links["content"] = Link{Href: c.href("core", "bitstreams", m.ID.String(), "content")}
	r.Links["bundle"] = Link{Href: c.href("core", "bundles", m.BundleID.String())}

	return r
}

func (c Converter) EPerson(m *domain.EPerson) EPersonRest {
	r := EPersonRest{
		DSpaceObjectRest: c.dso(&m.DSO, "eperson", "eperson", "epersons"),
		Email:            m.Email,
		NetID:            m.NetID,
		CanLogIn:         m.CanLogIn,
		SelfRegistered:   m.SelfRegistered,
	}

	r.Name = m.FullName()
	if m.LastActive != nil {
		r.LastActive = m.LastActive.UTC().Format(time.RFC3339)
	}

	return r
}

func (c Converter) Group(m *domain.Group) GroupRest {
	id := m.ID.String()
	return GroupRest{
		ID:        id,
		UUID:      id,
		Name:      m.Name,
		Permanent: m.Permanent,
		Type:      "group",
		Links:     Links{"self": {Href: c.href("eperson", "groups", id)}},
	}
}

func (c Converter) WorkspaceItem(m *domain.WorkspaceItem) WorkspaceItemRest {
	return WorkspaceItemRest{
		ID:    m.ID,
		Type:  "workspaceitem",
		Links: c.inProgressLinks("submission", "workspaceitems", m.ID, m.ItemID, m.CollectionID, m.SubmitterID),
	}
}

func (c Converter) WorkflowItem(m *domain.WorkflowItem) WorkflowItemRest {
	return WorkflowItemRest{
		ID:    m.ID,
		State: int(m.State),
		Type:  "workflowitem",
		Links: c.inProgressLinks("workflow", "workflowitems", m.ID, m.ItemID, m.CollectionID, m.SubmitterID),
	}
}

func (c Converter) inProgressLinks(category, name string, id int, item, collection, submitter uuid.UUID) Links {
	return Links{
		"self":       {Href: c.href(category, name, strconv.Itoa(id))},
		"item":       {Href: c.href("core", "items", item.String())},
		"collection": {Href: c.href("core", "collections", collection.String())},
		"submitter":  {Href: c.href("eperson", "epersons", submitter.String())},
	}
}
