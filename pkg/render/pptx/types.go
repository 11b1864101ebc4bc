package pptx

import "encoding/xml"

// The structs below cover the subset of PresentationML read back by [Read].

type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIDList *slideIDListXML `xml:"sldIdLst"`
	SlideSz     *slideSzXML     `xml:"sldSz"`
}

type slideIDListXML struct {
	SlideID []slideIDXML `xml:"sldId"`
}

type slideIDXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type slideSzXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type slideXML struct {
	XMLName xml.Name `xml:"sld"`
	CSld    cSldXML  `xml:"cSld"`
}

type notesSlideXML struct {
	XMLName xml.Name `xml:"notes"`
	CSld    cSldXML  `xml:"cSld"`
}

type cSldXML struct {
	SpTree spTreeXML `xml:"spTree"`
}

type spTreeXML struct {
	Sp           []spXML           `xml:"sp"`
	Pic          []picXML          `xml:"pic"`
	GraphicFrame []graphicFrameXML `xml:"graphicFrame"`
	GrpSp        []spTreeXML       `xml:"grpSp"`
}

type cNvPrXML struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"`
}

type spXML struct {
	NvSpPr struct {
		CNvPr cNvPrXML `xml:"cNvPr"`
		NvPr  struct {
			Ph *phXML `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	SpPr struct {
		Xfrm      *xfrmXML  `xml:"xfrm"`
		SolidFill *colorXML `xml:"solidFill"`
	} `xml:"spPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type phXML struct {
	Type string `xml:"type,attr"`
}

type xfrmXML struct {
	Off struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"off"`
	Ext struct {
		Cx int64 `xml:"cx,attr"`
		Cy int64 `xml:"cy,attr"`
	} `xml:"ext"`
}

type colorXML struct {
	SrgbClr *struct {
		Val string `xml:"val,attr"`
	} `xml:"srgbClr"`
}

type txBodyXML struct {
	BodyPr struct {
		Wrap string `xml:"wrap,attr"`
	} `xml:"bodyPr"`
	P []pXML `xml:"p"`
}

// pXML keeps runs, breaks and fields in document order.
type pXML struct {
	PPr   *pPrXML    `xml:"pPr"`
	Items []pItemXML `xml:",any"`
}

type pPrXML struct {
	Algn   string `xml:"algn,attr"`
	SpcAft *struct {
		SpcPts struct {
			Val int `xml:"val,attr"`
		} `xml:"spcPts"`
	} `xml:"spcAft"`
}

// pItemXML is any child of a:p other than a:pPr: a:r, a:br, a:fld or
// a:endParaRPr.
type pItemXML struct {
	XMLName xml.Name
	RPr     *rPrXML `xml:"rPr"`
	T       string  `xml:"t"`
}

type rPrXML struct {
	Sz    int       `xml:"sz,attr"`
	B     string    `xml:"b,attr"`
	I     string    `xml:"i,attr"`
	Fill  *colorXML `xml:"solidFill"`
	Latin *struct {
		Typeface string `xml:"typeface,attr"`
	} `xml:"latin"`
}

type picXML struct {
	NvPicPr struct {
		CNvPr cNvPrXML `xml:"cNvPr"`
	} `xml:"nvPicPr"`
	BlipFill struct {
		Blip struct {
			Embed string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships embed,attr"`
		} `xml:"blip"`
	} `xml:"blipFill"`
	SpPr struct {
		Xfrm *xfrmXML `xml:"xfrm"`
	} `xml:"spPr"`
}

type graphicFrameXML struct {
	NvGraphicFramePr struct {
		CNvPr cNvPrXML `xml:"cNvPr"`
	} `xml:"nvGraphicFramePr"`
	Xfrm    *xfrmXML `xml:"xfrm"`
	Graphic struct {
		GraphicData struct {
			URI string  `xml:"uri,attr"`
			Tbl *tblXML `xml:"tbl"`
		} `xml:"graphicData"`
	} `xml:"graphic"`
}

type tblXML struct {
	TblPr *struct {
		FirstRow string `xml:"firstRow,attr"`
		StyleID  string `xml:"tableStyleId"`
	} `xml:"tblPr"`
	TblGrid struct {
		GridCol []struct {
			W int64 `xml:"w,attr"`
		} `xml:"gridCol"`
	} `xml:"tblGrid"`
	Tr []struct {
		H  int64 `xml:"h,attr"`
		Tc []struct {
			TxBody *txBodyXML `xml:"txBody"`
		} `xml:"tc"`
	} `xml:"tr"`
}

type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Subject  string   `xml:"subject"`
	Creator  string   `xml:"creator"`
	Keywords string   `xml:"keywords"`
}

type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Slides      int      `xml:"Slides"`
	Notes       int      `xml:"Notes"`
}
