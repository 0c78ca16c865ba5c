package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// SecretData holds the data for a fake secret
type SecretData struct {
	SecretString  *string
	SecretBinary  []byte
	VersionStages []string
}

// FakeSecretsManagerClient is an in-memory Secrets Manager
type FakeSecretsManagerClient struct {
	mu sync.Mutex

	// Secrets maps secret ids to their data
	Secrets map[string]*SecretData
	// Errors maps secret ids to errors to return
	Errors map[string]error
	// GetSecretValueFunc allows custom behavior for GetSecretValue
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
	// Calls records every GetSecretValue input
	Calls []*secretsmanager.GetSecretValueInput
}

// NewFakeSecretsManagerClient creates a new fake Secrets Manager client
func NewFakeSecretsManagerClient() *FakeSecretsManagerClient {
	return &FakeSecretsManagerClient{
		Secrets: make(map[string]*SecretData),
		Errors:  make(map[string]error),
	}
}

// AddSecretString adds a string secret in the AWSCURRENT stage
func (f *FakeSecretsManagerClient) AddSecretString(name, value string) {
	f.Secrets[name] = &SecretData{
		SecretString:  aws.String(value),
		VersionStages: []string{"AWSCURRENT"},
	}
}

// AddSecretBinary adds a binary secret in the AWSCURRENT stage
func (f *FakeSecretsManagerClient) AddSecretBinary(name string, value []byte) {
	f.Secrets[name] = &SecretData{
		SecretBinary:  value,
		VersionStages: []string{"AWSCURRENT"},
	}
}

// AddError configures the fake to return an error for a specific secret
func (f *FakeSecretsManagerClient) AddError(name string, err error) {
	f.Errors[name] = err
}

// GetSecretValue returns the stored secret, or ResourceNotFoundException
func (f *FakeSecretsManagerClient) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, params)
	f.mu.Unlock()

	if f.GetSecretValueFunc != nil {
		return f.GetSecretValueFunc(ctx, params)
	}

	secretName := aws.ToString(params.SecretId)

	if err, exists := f.Errors[secretName]; exists {
		return nil, err
	}

	data, exists := f.Secrets[secretName]
	if !exists || !hasStage(data, aws.ToString(params.VersionStage)) {
		return nil, &types.ResourceNotFoundException{
			Message: aws.String(fmt.Sprintf("Secrets Manager can't find the specified secret: %s", secretName)),
		}
	}

	// Hand out copies, as the real client decodes a fresh response each call
	out := &secretsmanager.GetSecretValueOutput{
		ARN:           aws.String(fmt.Sprintf("arn:aws:secretsmanager:us-east-1:123456789012:secret:%s", secretName)),
		Name:          params.SecretId,
		VersionStages: data.VersionStages,
	}
	if data.SecretBinary != nil {
		out.SecretBinary = append([]byte(nil), data.SecretBinary...)
	}
	if data.SecretString != nil {
		out.SecretString = aws.String(*data.SecretString)
	}
	return out, nil
}

func hasStage(data *SecretData, stage string) bool {
	if stage == "" {
		return true
	}
	for _, s := range data.VersionStages {
		if s == stage {
			return true
		}
	}
	return false
}
