package export

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/socialstats"
)

var sheetNames = map[socialstats.Platform]string{
	socialstats.PlatformInstagram: "Instagram",
	socialstats.PlatformTikTok:    "TikTok",
}

var cellEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Excel renders records as an HTML table that spreadsheet applications open
// as a workbook. Cell text has "<" and ">" escaped.
func Excel(records []*socialstats.Record, platform socialstats.Platform) ([]byte, error) {
	sheet, ok := sheetNames[platform]
	if !ok {
		sheet = "Sheet1"
	}
	workbook, err := workbookXML(sheet)
	if err != nil {
		return nil, err
	}

	cols := columns(platform, func(r *socialstats.Record) string {
		return r.Time().Format("2006-01-02 15:04:05")
	})

	var b strings.Builder
	b.WriteString(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:x="urn:schemas-microsoft-com:office:excel" xmlns="http://www.w3.org/TR/REC-html40">`)
	b.WriteString("\n<head>\n<!--[if gte mso 9]><xml>")
	b.WriteString(workbook)
	b.WriteString("</xml><![endif]-->\n")
	b.WriteString(`<meta http-equiv="content-type" content="text/plain; charset=UTF-8"/>`)
	b.WriteString("\n</head>\n<body>\n<table border=\"1\">\n<tr>")
	for _, c := range cols {
		fmt.Fprintf(&b, "<th>%s</th>", c.header)
	}
	b.WriteString("</tr>\n")
	for _, r := range records {
		b.WriteString("<tr>")
		for _, c := range cols {
			fmt.Fprintf(&b, "<td>%s</td>", cellEscaper.Replace(c.value(r)))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n</body>\n</html>")
	return []byte(b.String()), nil
}

// workbookXML builds the workbook metadata read by spreadsheet applications
// from the conditional comment in the document head.
func workbookXML(sheet string) (string, error) {
	doc := etree.NewDocument()
	wb := doc.CreateElement("x:ExcelWorkbook")
	ws := wb.CreateElement("x:ExcelWorksheets").CreateElement("x:ExcelWorksheet")
	ws.CreateElement("x:Name").SetText(sheet)
	ws.CreateElement("x:WorksheetOptions").CreateElement("x:DisplayGridlines")

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("writing workbook metadata: %w", err)
	}
	return out, nil
}
