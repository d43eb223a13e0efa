// Package tei contains the subset of the TEI P5 schema that GROBID produces
// when it extracts the header of a scholarly document.
package tei

import (
	"encoding/xml"
	"fmt"
	"io"
)

const Namespace string = "http://www.tei-c.org/ns/1.0"

// Attributes shared by most TEI elements.
type Attributes struct {
	ID      string `xml:"http://www.w3.org/XML/1998/namespace id,attr,omitempty"`
	Lang    string `xml:"http://www.w3.org/XML/1998/namespace lang,attr,omitempty"`
	N       string `xml:"n,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Subtype string `xml:"subtype,attr,omitempty"`
	Key     string `xml:"key,attr,omitempty"`
	Ref     string `xml:"ref,attr,omitempty"`
	Coords  string `xml:"coords,attr,omitempty"`
}

type TEI struct {
	XMLName   xml.Name   `xml:"TEI"`
	TeiHeader *TeiHeader `xml:"teiHeader"`
	Text      *Text      `xml:"text"`
}

type TeiHeader struct {
	Attributes
	FileDesc    *FileDesc    `xml:"fileDesc"`
	ProfileDesc *ProfileDesc `xml:"profileDesc"`
}

type FileDesc struct {
	TitleStmt       *TitleStmt       `xml:"titleStmt"`
	PublicationStmt *PublicationStmt `xml:"publicationStmt"`
	SourceDesc      *SourceDesc      `xml:"sourceDesc"`
}

type TitleStmt struct {
	Titles []Title `xml:"title"`
}

type Title struct {
	Attributes
	Level string `xml:"level,attr,omitempty"`
	Value string `xml:",chardata"`
}

type PublicationStmt struct {
	Publisher string `xml:"publisher"`
	Dates     []Date `xml:"date"`
	Idnos     []Idno `xml:"idno"`
}

type Date struct {
	Attributes
	When  string `xml:"when,attr,omitempty"`
	Value string `xml:",chardata"`
}

type SourceDesc struct {
	BiblStructs []BiblStruct `xml:"biblStruct"`
}

type BiblStruct struct {
	Attributes
	Analytic *Analytic `xml:"analytic"`
	Monogrs  []Monogr  `xml:"monogr"`
	Idnos    []Idno    `xml:"idno"`
	Notes    []Note    `xml:"note"`
}

type Analytic struct {
	Authors []Author `xml:"author"`
	Titles  []Title  `xml:"title"`
	Idnos   []Idno   `xml:"idno"`
}

type Monogr struct {
	Titles  []Title  `xml:"title"`
	Authors []Author `xml:"author"`
	Idnos   []Idno   `xml:"idno"`
	Imprint *Imprint `xml:"imprint"`
}

type Imprint struct {
	Publisher  string      `xml:"publisher"`
	Dates      []Date      `xml:"date"`
	BiblScopes []BiblScope `xml:"biblScope"`
}

type BiblScope struct {
	Unit  string `xml:"unit,attr,omitempty"`
	From  string `xml:"from,attr,omitempty"`
	To    string `xml:"to,attr,omitempty"`
	Value string `xml:",chardata"`
}

type Author struct {
	Attributes
	Role         string        `xml:"role,attr,omitempty"`
	PersName     *PersName     `xml:"persName"`
	Emails       []Email       `xml:"email"`
	Affiliations []Affiliation `xml:"affiliation"`
}

type PersName struct {
	Attributes
	Forenames []Forename `xml:"forename"`
	Surname   *Surname   `xml:"surname"`
}

type Forename struct {
	Attributes
	Value string `xml:",chardata"`
}

type Surname struct {
	Value string `xml:",chardata"`
}

type Email struct {
	Value string `xml:",chardata"`
}

type Affiliation struct {
	Attributes
	OrgNames []OrgName `xml:"orgName"`
	Address  *Address  `xml:"address"`
}

type OrgName struct {
	Attributes
	Value string `xml:",chardata"`
}

// Org is an organisation, possibly made up of other organisations.
type Org struct {
	Attributes
	Role      string    `xml:"role,attr,omitempty"`
	OrgNames  []OrgName `xml:"orgName"`
	Addresses []Address `xml:"address"`
	Orgs      []Org     `xml:"org"`
}

type Address struct {
	Attributes
	AddrLines  []AddrLine  `xml:"addrLine"`
	Settlement *Settlement `xml:"settlement"`
	Region     *Region     `xml:"region"`
	PostCode   *PostCode   `xml:"postCode"`
	Country    *Country    `xml:"country"`
}

type AddrLine struct {
	Value string `xml:",chardata"`
}

type Settlement struct {
	Value string `xml:",chardata"`
}

type Region struct {
	Value string `xml:",chardata"`
}

type PostCode struct {
	Value string `xml:",chardata"`
}

type Country struct {
	Key   string `xml:"key,attr,omitempty"`
	Value string `xml:",chardata"`
}

type Idno struct {
	Attributes
	Value string `xml:",chardata"`
}

type ProfileDesc struct {
	Abstract  *Abstract  `xml:"abstract"`
	TextClass *TextClass `xml:"textClass"`
}

type Abstract struct {
	Divs []Div `xml:"div"`
	Ps   []P   `xml:"p"`
}

type TextClass struct {
	Keywords []Keywords `xml:"keywords"`
}

type Keywords struct {
	Scheme string `xml:"scheme,attr,omitempty"`
	Terms  []Term `xml:"term"`
}

type Term struct {
	Value string `xml:",chardata"`
}

type Text struct {
	Attributes
	Body *Body `xml:"body"`
	Back *Back `xml:"back"`
}

type Body struct {
	Divs  []Div   `xml:"div"`
	Ps    []P     `xml:"p"`
	Notes []Note  `xml:"note"`
	Trash []Trash `xml:"trash"`
}

type Back struct {
	Divs []Div `xml:"div"`
}

type Div struct {
	Attributes
	Head     *Head     `xml:"head"`
	Ps       []P       `xml:"p"`
	Divs     []Div     `xml:"div"`
	ListBibl *ListBibl `xml:"listBibl"`
}

type Head struct {
	Attributes
	Value string `xml:",chardata"`
}

type P struct {
	Attributes
	Value string `xml:",chardata"`
}

type Note struct {
	Attributes
	Place string `xml:"place,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Trash holds content GROBID could not place anywhere else.
type Trash struct {
	Content string `xml:",innerxml"`
}

type ListBibl struct {
	BiblStructs []BiblStruct `xml:"biblStruct"`
}

func Parse(r io.Reader) (*TEI, error) {
	doc := &TEI{}
	if err := xml.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to parse tei document: %w", err)
	}
	return doc, nil
}
