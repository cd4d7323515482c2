package app

import (
	"context"
	"fmt"

	cryptoService "github.com/allisson/credstash/internal/crypto/service"
)

// KeyService returns the key service that mints and unwraps data keys. A configured
// KMS key URI selects a gocloud keeper; otherwise AWS KMS is used directly.
func (c *Container) KeyService() (cryptoService.KeyService, error) {
	var err error
	c.keyServiceInit.Do(func() {
		c.keyService, err = c.initKeyService()
		if err != nil {
			c.initErrors["keyService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyService"]; exists {
		return nil, storedErr
	}
	return c.keyService, nil
}

// EnvelopeService returns the envelope encryption engine.
func (c *Container) EnvelopeService() (cryptoService.EnvelopeService, error) {
	var err error
	c.envelopeServiceInit.Do(func() {
		c.envelopeService, err = c.initEnvelopeService()
		if err != nil {
			c.initErrors["envelopeService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeService"]; exists {
		return nil, storedErr
	}
	return c.envelopeService, nil
}

// initKeyService creates the configured key service.
func (c *Container) initKeyService() (cryptoService.KeyService, error) {
	if c.config.KMSKeyURI != "" {
		keeper, err := cryptoService.NewKMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open keeper for key service: %w", err)
		}
		c.keeper = cryptoService.NewKeeperKeyService(keeper)
		return c.keeper, nil
	}

	awsConfig, err := c.AWSConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get aws config for key service: %w", err)
	}

	client := cryptoService.NewKMSClient(awsConfig, c.config.KMSEndpoint)
	return cryptoService.NewAWSKMSKeyService(client, c.config.KMSMasterKeyID), nil
}

// initEnvelopeService creates the envelope engine on top of the key service.
func (c *Container) initEnvelopeService() (cryptoService.EnvelopeService, error) {
	keyService, err := c.KeyService()
	if err != nil {
		return nil, fmt.Errorf("failed to get key service for envelope service: %w", err)
	}
	return cryptoService.NewEnvelopeService(keyService), nil
}
