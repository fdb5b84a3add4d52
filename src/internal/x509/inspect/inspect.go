// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package inspect

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/H0llyW00dzZ/cr8cert/src/internal/x509/builder"
)

// Chain is an ordered list of certificates, leaf first and root last.
type Chain struct {
	Certs []*x509.Certificate

	// Now is the reference time for validity checks. Nil means time.Now.
	Now func() time.Time
}

// New returns a Chain of certs, leaf first.
func New(certs ...*x509.Certificate) *Chain {
	return &Chain{Certs: certs, Now: time.Now}
}

// RenderASCIITree renders the chain as an ASCII tree, marking each certificate
// valid (✓) or outside its validity window (✗).
func (ch *Chain) RenderASCIITree() string {
	if len(ch.Certs) == 0 {
		return "No certificates in chain"
	}

	now := ch.now()
	var result strings.Builder
	for i, cert := range ch.Certs {
		connector := "├── "
		if i == len(ch.Certs)-1 {
			connector = "└── "
		}

		statusIcon := "✓"
		if !isValidAt(cert, now) {
			statusIcon = "✗"
		}

		fmt.Fprintf(&result, "%s[%s] %s (%s)\n", connector, statusIcon, cert.Subject.CommonName, ch.role(i))
	}
	return result.String()
}

// RenderTable renders the chain as a markdown table with role, subject, issuer,
// expiry, key size and subject alternative names.
func (ch *Chain) RenderTable() string {
	if len(ch.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key Size", "Names"})

	rows := make([][]string, 0, len(ch.Certs))
	for i, cert := range ch.Certs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ch.role(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			keySize(cert),
			strings.Join(altNames(cert), " "),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// certificateJSON is the machine-readable form of one chain entry.
type certificateJSON struct {
	Index        int       `json:"index"`
	Role         string    `json:"role"`
	Subject      string    `json:"subject"`
	Issuer       string    `json:"issuer"`
	SerialNumber string    `json:"serialNumber"`
	KeySize      string    `json:"keySize"`
	NotBefore    time.Time `json:"notBefore"`
	NotAfter     time.Time `json:"notAfter"`
	IsCA         bool      `json:"isCA"`
	Names        []string  `json:"names,omitempty"`
}

// MarshalJSON encodes the chain as an indented JSON array.
func (ch *Chain) MarshalJSON() ([]byte, error) {
	out := make([]certificateJSON, len(ch.Certs))
	for i, cert := range ch.Certs {
		out[i] = certificateJSON{
			Index:        i,
			Role:         ch.role(i),
			Subject:      cert.Subject.String(),
			Issuer:       cert.Issuer.String(),
			SerialNumber: cert.SerialNumber.Text(16),
			KeySize:      keySize(cert),
			NotBefore:    cert.NotBefore,
			NotAfter:     cert.NotAfter,
			IsCA:         cert.IsCA,
			Names:        altNames(cert),
		}
	}
	return json.Marshal(out)
}

func (ch *Chain) now() time.Time {
	if ch.Now == nil {
		return time.Now()
	}
	return ch.Now()
}

// role describes the certificate at index within the chain.
func (ch *Chain) role(index int) string {
	total := len(ch.Certs)
	switch {
	case total == 1 && ch.Certs[0].IsCA:
		return "Root CA"
	case total == 1:
		return "Self-Signed Certificate"
	case index == 0:
		return "Leaf"
	case index == total-1:
		return "Root CA"
	default:
		return "Intermediate CA"
	}
}

func isValidAt(cert *x509.Certificate, t time.Time) bool {
	return !t.Before(cert.NotBefore) && !t.After(cert.NotAfter)
}

func keySize(cert *x509.Certificate) string {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("%d-bit RSA", pub.Size()*8)
	case *ecdsa.PublicKey:
		return fmt.Sprintf("%d-bit ECDSA", pub.Curve.Params().BitSize)
	default:
		return "unknown"
	}
}

// altNames lists the SAN entries in encoded order, falling back to the parsed
// fields if the extension cannot be read.
func altNames(cert *x509.Certificate) []string {
	sans, err := builder.SubjectAltNames(cert)
	if err != nil {
		sans = nil
		for _, name := range cert.DNSNames {
			sans = append(sans, builder.AltName{Kind: builder.AltNameDNS, Value: name})
		}
		for _, ip := range cert.IPAddresses {
			sans = append(sans, builder.AltName{Kind: builder.AltNameIP, Value: ip.String()})
		}
	}

	names := make([]string, 0, len(sans))
	for _, san := range sans {
		names = append(names, san.String())
	}
	return names
}
