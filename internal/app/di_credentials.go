package app

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/allisson/credstash/internal/config"
	credentialRepository "github.com/allisson/credstash/internal/credential/repository"
	credentialUseCase "github.com/allisson/credstash/internal/credential/usecase"
)

// DynamoDBRepository returns the DynamoDB credential repository. The setup command uses
// it directly to create the table.
func (c *Container) DynamoDBRepository() (*credentialRepository.DynamoDBCredentialRepository, error) {
	var err error
	c.dynamoDBRepositoryInit.Do(func() {
		c.dynamoDBRepository, err = c.initDynamoDBRepository()
		if err != nil {
			c.initErrors["dynamoDBRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["dynamoDBRepository"]; exists {
		return nil, storedErr
	}
	return c.dynamoDBRepository, nil
}

// CredentialRepository returns the credential repository for the configured store driver.
func (c *Container) CredentialRepository() (credentialUseCase.CredentialRepository, error) {
	var err error
	c.credentialRepoInit.Do(func() {
		c.credentialRepo, err = c.initCredentialRepository()
		if err != nil {
			c.initErrors["credentialRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialRepo"]; exists {
		return nil, storedErr
	}
	return c.credentialRepo, nil
}

// CredentialUseCase returns the credential use case.
func (c *Container) CredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	var err error
	c.credentialUseCaseInit.Do(func() {
		c.credentialUseCase, err = c.initCredentialUseCase()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

// initDynamoDBRepository creates the DynamoDB repository for the configured table.
func (c *Container) initDynamoDBRepository() (*credentialRepository.DynamoDBCredentialRepository, error) {
	awsConfig, err := c.AWSConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get aws config for dynamodb repository: %w", err)
	}

	client := credentialRepository.NewDynamoDBClient(awsConfig, c.config.DynamoDBEndpoint)
	return credentialRepository.NewDynamoDBCredentialRepository(client, c.config.Table), nil
}

// initCredentialRepository creates the credential repository based on the store driver.
func (c *Container) initCredentialRepository() (credentialUseCase.CredentialRepository, error) {
	if c.config.StoreDriver == config.StoreDynamoDB {
		repo, err := c.DynamoDBRepository()
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}

	switch c.config.StoreDriver {
	case config.StorePostgres:
		return credentialRepository.NewPostgreSQLCredentialRepository(db), nil
	case config.StoreMySQL:
		return credentialRepository.NewMySQLCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", c.config.StoreDriver)
	}
}

// initCredentialUseCase creates the credential use case with all its dependencies.
func (c *Container) initCredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	credentialRepo, err := c.CredentialRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential repository for credential use case: %w", err)
	}

	envelopeService, err := c.EnvelopeService()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope service for credential use case: %w", err)
	}

	opts := []credentialUseCase.Option{
		credentialUseCase.WithGetAllConcurrency(c.config.GetAllConcurrency),
	}
	if c.config.GetAllRateLimit > 0 {
		limiter := rate.NewLimiter(rate.Limit(c.config.GetAllRateLimit), c.config.GetAllRateBurst)
		opts = append(opts, credentialUseCase.WithGetAllRateLimiter(limiter))
	}

	baseUseCase := credentialUseCase.NewCredentialUseCase(credentialRepo, envelopeService, opts...)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
		}
		return credentialUseCase.NewCredentialUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
