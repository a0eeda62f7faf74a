package oxml

import (
	"encoding/xml"
	"strings"
)

const wbBaseDir = "xl"

const (
	typeSheetUrl = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	typeDocUrl   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
)

type xmlWorkbook struct {
	XMLName xml.Name   `xml:"workbook"`
	Views   []xmlView  `xml:"bookViews>workbookView"`
	Sheets  []xmlSheet `xml:"sheets>sheet"`
}

type xmlView struct {
	ActiveTab int `xml:"activeTab,attr"`
}

type xmlSheet struct {
	XMLName xml.Name   `xml:"sheet"`
	Id      string     `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	Name    string     `xml:"name,attr"`
	Index   int        `xml:"sheetId,attr"`
	State   SheetState `xml:"state,attr"`
}

type xmlRelations struct {
	XMLName   xml.Name      `xml:"Relationships"`
	Relations []xmlRelation `xml:"Relationship"`
}

type xmlRelation struct {
	XMLName xml.Name `xml:"Relationship"`
	Target  string   `xml:",attr"`
	Id      string   `xml:",attr"`
	Type    string   `xml:",attr"`
}

type xmlSharedStrings struct {
	XMLName xml.Name          `xml:"sst"`
	Values  []xmlSharedString `xml:"si"`
}

// xmlSharedString holds either a plain text or a list of formatted runs.
type xmlSharedString struct {
	Text string   `xml:"t"`
	Runs []string `xml:"r>t"`
}

func (s xmlSharedString) String() string {
	if len(s.Runs) == 0 {
		return s.Text
	}
	return s.Text + strings.Join(s.Runs, "")
}
