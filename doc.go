// Package qrjson encodes JSON payloads into QR codes with an optional center
// logo and a text footer.
//
// Service is the entry point. It serializes any structured value, runs the
// qrcode pipeline and reports every failure as a single *Error whose Kind is
// one of the qrcode sentinel errors:
//
//	svc, err := qrjson.NewFromConfig(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	art, err := svc.Generate(ctx, map[string]any{"ticket": 42},
//		qrcode.WithLogo("s3://brand/logo.png"),
//		qrcode.WithFooter("Scan to check in", "icons/ticket.svg"),
//	)
//	if errors.Is(err, qrcode.ErrAssetLoad) {
//		// the logo could not be loaded
//	}
//
// Configuration comes from QR_* environment variables, see Config.
package qrjson
