// Package etree writes the docset info.plist property list using etree.
package etree

import (
	"github.com/beevik/etree"
	"github.com/fwojciec/docset"
)

// Ensure InfoPlistWriter implements docset.MetadataWriter at compile time.
var _ docset.MetadataWriter = (*InfoPlistWriter)(nil)

// InfoPlistWriter writes Contents/info.plist.
type InfoPlistWriter struct{}

// NewInfoPlistWriter creates a new InfoPlistWriter.
func NewInfoPlistWriter() *InfoPlistWriter {
	return &InfoPlistWriter{}
}

// WriteMetadata writes the property list describing d to path.
func (w *InfoPlistWriter) WriteMetadata(path string, d *docset.Docset) error {
	doc := NewInfoPlist(d)
	if err := doc.WriteToFile(path); err != nil {
		return docset.Errorf(docset.EMETADATA, "failed to write info.plist: %v", err)
	}
	return nil
}

// NewInfoPlist builds the property list document for d.
func NewInfoPlist(d *docset.Docset) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`)

	plist := doc.CreateElement("plist")
	plist.CreateAttr("version", "1.0")
	dict := plist.CreateElement("dict")

	addString(dict, "CFBundleIdentifier", d.BundleName())
	addString(dict, "CFBundleName", d.DisplayName())
	addString(dict, "DocSetPlatformFamily", d.Family())
	addString(dict, "dashIndexFilePath", d.IndexFilePath())
	addBool(dict, "DashDocSetBlocksOnlineResources", true)
	addBool(dict, "isJavaScriptEnabled", true)

	doc.Indent(4)
	return doc
}

func addString(dict *etree.Element, key, value string) {
	dict.CreateElement("key").SetText(key)
	dict.CreateElement("string").SetText(value)
}

func addBool(dict *etree.Element, key string, value bool) {
	dict.CreateElement("key").SetText(key)
	if value {
		dict.CreateElement("true")
	} else {
		dict.CreateElement("false")
	}
}
