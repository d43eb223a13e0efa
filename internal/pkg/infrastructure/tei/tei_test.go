package tei

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestParseGrobidHeader(t *testing.T) {
	is := is.New(t)

	doc, err := Parse(strings.NewReader(grobidHeader))
	is.NoErr(err)

	is.Equal(doc.TeiHeader.Lang, "en")
	is.Equal(len(doc.TeiHeader.FileDesc.SourceDesc.BiblStructs), 1)

	authors := doc.TeiHeader.FileDesc.SourceDesc.BiblStructs[0].Analytic.Authors
	is.Equal(len(authors), 2)
	is.Equal(authors[0].Name(), "Doe, Jane Q")
	is.Equal(authors[0].Affiliations[0].Address.Country.Key, "SE")
	is.Equal(authors[1].Name(), "Smith")

	is.True(doc.Text == nil)
}

func TestMetadata(t *testing.T) {
	is := is.New(t)

	doc, err := Parse(strings.NewReader(grobidHeader))
	is.NoErr(err)

	md := doc.Metadata()

	is.Equal(md.First("dc.title"), "On the deposit of things")
	is.Equal(md.Values("dc.contributor.author"), []string{"Doe, Jane Q", "Smith"})
	is.Equal(md.Values("dc.contributor.affiliation"), []string{"Mid Sweden University"})
	is.Equal(md.First("dc.identifier.doi"), "10.1000/xyz123")
	is.Equal(md.First("dc.date.issued"), "2021-03-04")
	is.Equal(md.First("dc.publisher"), "Example Press")
	is.Equal(md.Values("dc.subject"), []string{"repositories", "deposit"})
	is.Equal(md.First("dc.description.abstract"), "First paragraph.\n\nSecond paragraph.")
	is.Equal(md.First("dc.language.iso"), "en")
	is.Equal(md["dc.title"][0].Language, "en")
}

func TestMetadataOfEmptyDocument(t *testing.T) {
	is := is.New(t)

	doc, err := Parse(strings.NewReader(`<TEI xmlns="http://www.tei-c.org/ns/1.0"/>`))
	is.NoErr(err)
	is.Equal(len(doc.Metadata()), 0)
}

func TestParseInvalidDocument(t *testing.T) {
	is := is.New(t)

	_, err := Parse(strings.NewReader("<TEI><teiHeader>"))
	is.True(err != nil)
}

const grobidHeader string = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xml:space="preserve" xmlns="http://www.tei-c.org/ns/1.0">
	<teiHeader xml:lang="en">
		<fileDesc>
			<titleStmt>
				<title level="a" type="main">On the deposit
					of things</title>
			</titleStmt>
			<publicationStmt>
				<publisher>Example Press</publisher>
				<date type="published" when="2021-03-04">4 March 2021</date>
			</publicationStmt>
			<sourceDesc>
				<biblStruct>
					<analytic>
						<author role="corresp">
							<persName><forename type="first">Jane</forename><forename type="middle">Q</forename><surname>Doe</surname></persName>
							<email>jane@example.org</email>
							<affiliation key="aff0">
								<orgName type="institution">Mid Sweden University</orgName>
								<address><settlement>Sundsvall</settlement><country key="SE">Sweden</country></address>
							</affiliation>
						</author>
						<author>
							<persName><surname>Smith</surname></persName>
							<affiliation key="aff0">
								<orgName type="institution">Mid Sweden University</orgName>
							</affiliation>
						</author>
						<title level="a" type="main">On the deposit of things</title>
					</analytic>
					<monogr>
						<imprint><date type="published" when="2021-03-04"/></imprint>
					</monogr>
					<idno type="DOI">10.1000/xyz123</idno>
				</biblStruct>
			</sourceDesc>
		</fileDesc>
		<profileDesc>
			<textClass>
				<keywords><term>repositories</term><term>deposit</term></keywords>
			</textClass>
			<abstract>
				<div><p>First paragraph.</p><p>Second   paragraph.</p></div>
			</abstract>
		</profileDesc>
	</teiHeader>
</TEI>`
