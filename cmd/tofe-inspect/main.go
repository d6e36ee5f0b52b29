// tofe-inspect reads a raw EEPROM image and reports its atoms, or the
// first integrity failure encountered. It is a read-only diagnostic:
// generating a per-board image is a caller's job, not this package's
// (spec §1's Non-goals).
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"hdmi2usb.tv/tofe/eeprom"
	"hdmi2usb.tv/tofe/eeprom/atom"
	"hdmi2usb.tv/tofe/eeprom/composite"
	"hdmi2usb.tv/tofe/eeprom/container"
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("usage: %s <eeprom image file>", os.Args[0])
	}

	b, err := ioutil.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	switch kind := eeprom.Sniff(b); kind {
	case eeprom.KindComposite:
		inspectComposite(b)
	case eeprom.KindContainer:
		inspectContainer(b)
	default:
		log.Fatalf("%s: unrecognized image (first bytes: % x)", flag.Arg(0), firstBytes(b, 8))
	}
}

func firstBytes(b []byte, n int) []byte {
	if len(b) < n {
		n = len(b)
	}
	return b[:n]
}

func inspectComposite(b []byte) {
	img, err := composite.Parse(b)
	if err != nil {
		log.Fatal(err)
	}

	hdr, err := img.Header()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("FX2 header: vid=0x%04x pid=0x%04x did=0x%04x cfg=0x%02x", hdr.VID, hdr.PID, hdr.DID, hdr.Config)

	if err := img.Check(); err != nil {
		log.Printf("check: FAILED: %v", err)
	} else {
		log.Print("check: OK")
	}

	c, err := img.Container()
	if err != nil {
		log.Fatal(err)
	}
	printAtoms(c)
}

func inspectContainer(b []byte) {
	magicLen := 5
	if len(b) >= 2 && string(b[0:2]) == "OP" {
		magicLen = 2
	}
	c := container.Open(b, magicLen, 0)

	if err := c.Check(); err != nil {
		log.Printf("check: FAILED: %v", err)
	} else {
		log.Print("check: OK")
	}
	printAtoms(c)
}

func printAtoms(c *container.Container) {
	log.Printf("magic=%q version=0x%02x atoms=%d", c.Magic(), c.Version(), c.AtomCount())
	for i := 0; i < c.AtomCount(); i++ {
		v, err := c.Get(i)
		if err != nil {
			log.Printf("  [%d] error: %v", i, err)
			continue
		}
		name, err := atom.Name(v.Type)
		if err != nil {
			name = "?"
		}
		log.Printf("  [%d] 0x%02x %-22s %s", i, byte(v.Type), name, describe(v))
	}
}

func describe(v container.AtomView) string {
	switch v.Type.Family() {
	case atom.FamilyString, atom.FamilyURL, atom.FamilyRelativeURL:
		return v.Text
	case atom.FamilyTimestamp:
		t, err := atom.Time(v.Raw)
		if err != nil {
			return fmt.Sprintf("<invalid timestamp: %v>", err)
		}
		return t.Format("2006-01-02T15:04:05Z")
	case atom.FamilyLicense:
		return v.License.String()
	case atom.FamilySizeOffset:
		return fmt.Sprintf("offset=0x%x size=0x%x", v.Offset, v.Size)
	default:
		return ""
	}
}
