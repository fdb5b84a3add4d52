// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package builder

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"net"

	"golang.org/x/crypto/cryptobyte"
	casn1 "golang.org/x/crypto/cryptobyte/asn1"
)

var oidExtensionSubjectAltName = asn1.ObjectIdentifier{2, 5, 29, 17}

// GeneralName tags from RFC 5280 section 4.2.1.6.
const (
	tagDNSName   = 2
	tagIPAddress = 7
)

// AltNameKind distinguishes SubjectAlternativeName entries.
type AltNameKind int

const (
	// AltNameDNS is a dNSName entry.
	AltNameDNS AltNameKind = iota
	// AltNameIP is an iPAddress entry.
	AltNameIP
)

// AltName is a single SubjectAlternativeName entry.
type AltName struct {
	Kind  AltNameKind
	Value string
}

// String formats the entry the way OpenSSL prints it, e.g. "DNS:localhost".
func (a AltName) String() string {
	if a.Kind == AltNameIP {
		return "IP:" + a.Value
	}
	return "DNS:" + a.Value
}

// ClassifyHost returns the SAN entry for host. IP literals become IP entries;
// anything else is kept verbatim as a DNS name.
func ClassifyHost(host string) AltName {
	if ip := net.ParseIP(host); ip != nil {
		return AltName{Kind: AltNameIP, Value: ip.String()}
	}
	return AltName{Kind: AltNameDNS, Value: host}
}

// marshalSubjectAltName encodes hosts as a GeneralNames SEQUENCE in input order.
// crypto/x509 groups DNS names before IP addresses, so the extension is built here.
func marshalSubjectAltName(hosts []string) (pkix.Extension, error) {
	var b cryptobyte.Builder
	b.AddASN1(casn1.SEQUENCE, func(b *cryptobyte.Builder) {
		for _, host := range hosts {
			if ip := net.ParseIP(host); ip != nil {
				if ip4 := ip.To4(); ip4 != nil {
					ip = ip4
				}
				b.AddASN1(casn1.Tag(tagIPAddress).ContextSpecific(), func(b *cryptobyte.Builder) {
					b.AddBytes(ip)
				})
				continue
			}
			b.AddASN1(casn1.Tag(tagDNSName).ContextSpecific(), func(b *cryptobyte.Builder) {
				b.AddBytes([]byte(host))
			})
		}
	})

	der, err := b.Bytes()
	if err != nil {
		return pkix.Extension{}, fmt.Errorf("%w: subject alternative name: %w", ErrEncoding, err)
	}
	return pkix.Extension{Id: oidExtensionSubjectAltName, Value: der}, nil
}

// SubjectAltNames returns the DNS and IP entries of cert's SubjectAlternativeName
// extension in the order they were encoded. Other GeneralName kinds are skipped.
func SubjectAltNames(cert *x509.Certificate) ([]AltName, error) {
	for _, ext := range cert.Extensions {
		if !ext.Id.Equal(oidExtensionSubjectAltName) {
			continue
		}

		var (
			input = cryptobyte.String(ext.Value)
			seq   cryptobyte.String
			names []AltName
		)
		if !input.ReadASN1(&seq, casn1.SEQUENCE) {
			return nil, fmt.Errorf("%w: malformed subject alternative name", ErrEncoding)
		}
		for !seq.Empty() {
			var (
				value cryptobyte.String
				tag   casn1.Tag
			)
			if !seq.ReadAnyASN1(&value, &tag) {
				return nil, fmt.Errorf("%w: malformed general name", ErrEncoding)
			}
			switch tag {
			case casn1.Tag(tagDNSName).ContextSpecific():
				names = append(names, AltName{Kind: AltNameDNS, Value: string(value)})
			case casn1.Tag(tagIPAddress).ContextSpecific():
				names = append(names, AltName{Kind: AltNameIP, Value: net.IP(value).String()})
			}
		}
		return names, nil
	}
	return nil, nil
}
