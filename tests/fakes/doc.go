// Package fakes provides test doubles for the external clients used by
// key sources.
//
// Fakes are manually implemented (not generated) to provide precise control
// over test behavior.
//
// Usage:
//
//	fake := fakes.NewFakeSecretsManagerClient()
//	fake.AddSecretBinary("prod/db-key", key)
//	src, _ := source.NewAWSSecretsManager(ctx, ref, source.WithSecretsManagerClient(fake))
package fakes
