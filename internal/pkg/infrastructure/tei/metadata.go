package tei

import (
	"strings"

	"github.com/diwise/api-repository/internal/pkg/domain"
	"golang.org/x/exp/slices"
)

// Metadata maps the header of the document to Dublin Core fields.
func (t *TEI) Metadata() domain.Metadata {
	md := domain.Metadata{}

	h := t.TeiHeader
	if h == nil {
		return md
	}

	lang := h.Lang

	if h.FileDesc != nil {
		fd := h.FileDesc

		if fd.TitleStmt != nil {
			md.Add("dc.title", mainTitle(fd.TitleStmt.Titles), lang)
		}

		if fd.PublicationStmt != nil {
			md.Add("dc.publisher", clean(fd.PublicationStmt.Publisher), "")
			md.Add("dc.date.issued", publishedDate(fd.PublicationStmt.Dates), "")
		}

		if fd.SourceDesc != nil {
			for _, b := range fd.SourceDesc.BiblStructs {
				addBiblStruct(md, b)
			}
		}
	}

	if h.ProfileDesc != nil {
		if a := h.ProfileDesc.Abstract; a != nil {
			md.Add("dc.description.abstract", a.String(), lang)
		}

		if tc := h.ProfileDesc.TextClass; tc != nil {
			for _, k := range tc.Keywords {
				for _, term := range k.Terms {
					md.Add("dc.subject", clean(term.Value), lang)
				}
			}
		}
	}

	md.Add("dc.language.iso", lang, "")

	return md
}

func addBiblStruct(md domain.Metadata, b BiblStruct) {
	idnos := append([]Idno{}, b.Idnos...)

	if b.Analytic != nil {
		if md.First("dc.title") == "" {
			md.Add("dc.title", mainTitle(b.Analytic.Titles), "")
		}
		for _, a := range b.Analytic.Authors {
			addAuthor(md, a)
		}
		idnos = append(idnos, b.Analytic.Idnos...)
	}

	for _, m := range b.Monogrs {
		idnos = append(idnos, m.Idnos...)

		if m.Imprint == nil {
			continue
		}
		if md.First("dc.publisher") == "" {
			md.Add("dc.publisher", clean(m.Imprint.Publisher), "")
		}
		if md.First("dc.date.issued") == "" {
			md.Add("dc.date.issued", publishedDate(m.Imprint.Dates), "")
		}
	}

	for _, id := range idnos {
		if strings.EqualFold(id.Type, "DOI") && !slices.Contains(md.Values("dc.identifier.doi"), clean(id.Value)) {
			md.Add("dc.identifier.doi", clean(id.Value), "")
		}
	}
}

func addAuthor(md domain.Metadata, a Author) {
	md.Add("dc.contributor.author", a.Name(), "")

	for _, aff := range a.Affiliations {
		for _, org := range aff.OrgNames {
			name := clean(org.Value)
			if !slices.Contains(md.Values("dc.contributor.affiliation"), name) {
				md.Add("dc.contributor.affiliation", name, "")
			}
		}
	}
}

// Name formats the author as "Surname, Forenames".
func (a Author) Name() string {
	if a.PersName == nil {
		return ""
	}

	forenames := []string{}
	for _, f := range a.PersName.Forenames {
		if v := clean(f.Value); v != "" {
			forenames = append(forenames, v)
		}
	}

	surname := ""
	if a.PersName.Surname != nil {
		surname = clean(a.PersName.Surname.Value)
	}

	switch {
	case surname == "":
		return strings.Join(forenames, " ")
	case len(forenames) == 0:
		return surname
	}

	return surname + ", " + strings.Join(forenames, " ")
}

// String returns the paragraphs of the abstract separated by blank lines.
func (a Abstract) String() string {
	paragraphs := []string{}

	collect := func(ps []P) {
		for _, p := range ps {
			if v := clean(p.Value); v != "" {
				paragraphs = append(paragraphs, v)
			}
		}
	}

	collect(a.Ps)
	for _, d := range a.Divs {
		collect(d.Ps)
	}

	return strings.Join(paragraphs, "\n\n")
}

func mainTitle(titles []Title) string {
	for _, t := range titles {
		if t.Type == "main" {
			return clean(t.Value)
		}
	}
	if len(titles) > 0 {
		return clean(titles[0].Value)
	}
	return ""
}

func publishedDate(dates []Date) string {
	for _, d := range dates {
		if d.Type == "published" || d.Type == "" {
			if d.When != "" {
				return d.When
			}
			return clean(d.Value)
		}
	}
	return ""
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
