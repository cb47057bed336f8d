package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"protocol-catalog/internal/application/port"
	"protocol-catalog/internal/config"
	"protocol-catalog/internal/domain"
	"protocol-catalog/internal/domain/entity"
	domainRepo "protocol-catalog/internal/domain/repository"
	domainService "protocol-catalog/internal/domain/service"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Compile-time check
var _ port.DescriptorValidator = (*descriptorValidator)(nil)

// descriptorValidator implements port.DescriptorValidator.
//
// By default the first violation ends the run. With cfg.Aggregate every
// violation of every protocol is collected instead; violations that leave
// nothing to inspect (missing descriptor, non-object document) still end the
// checks of that protocol.
type descriptorValidator struct {
	protocolRepo domainRepo.ProtocolRepository
	linkChecker  domainService.LinkChecker
	linkCache    domainRepo.LinkCacheRepository
	cfg          config.ValidatorConfig
	logger       *zap.Logger
}

// NewDescriptorValidator creates a new descriptor validator. linkChecker and
// linkCache may be nil; links are only probed when cfg.CheckLinks is set and a
// checker is given.
func NewDescriptorValidator(
	protocolRepo domainRepo.ProtocolRepository,
	linkChecker domainService.LinkChecker,
	linkCache domainRepo.LinkCacheRepository,
	cfg config.ValidatorConfig,
	logger *zap.Logger,
) port.DescriptorValidator {
	return &descriptorValidator{
		protocolRepo: protocolRepo,
		linkChecker:  linkChecker,
		linkCache:    linkCache,
		cfg:          cfg,
		logger:       logger.Named("DescriptorValidator"),
	}
}

// Validate checks each protocol in order.
func (v *descriptorValidator) Validate(ctx context.Context, protocolIDs []string) error {
	if len(protocolIDs) == 0 {
		v.logger.Info("No changed protocols")
		return nil
	}

	v.logger.Info("Currently validating protocols",
		zap.Strings("protocols", protocolIDs),
		zap.Bool("aggregate", v.cfg.Aggregate),
		zap.Bool("checkLinks", v.linksEnabled()),
	)

	var errs error
	for _, id := range protocolIDs {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, fmt.Errorf("validation interrupted before protocol %s: %w", id, err))
		}

		if err := v.ValidateProtocol(ctx, id); err != nil {
			if !v.cfg.Aggregate {
				v.logger.Error("Protocol descriptor is invalid", zap.String("protocol", id), zap.Error(err))
				return err
			}
			errs = multierr.Append(errs, err)
		}
	}

	if errs != nil {
		v.logger.Error("Protocol descriptors are invalid",
			zap.Int("violations", len(multierr.Errors(errs))),
			zap.Error(errs),
		)
		return errs
	}

	v.logger.Info("Everything is fine", zap.Int("validated", len(protocolIDs)))
	return nil
}

// ValidateProtocol runs the descriptor rules for one protocol.
func (v *descriptorValidator) ValidateProtocol(ctx context.Context, protocolID string) error {
	check := &protocolCheck{protocolID: protocolID, aggregate: v.cfg.Aggregate}
	if err := v.checkProtocol(ctx, check); err != nil {
		return multierr.Append(check.errs, err)
	}
	if check.errs == nil {
		v.logger.Debug("Protocol descriptor is valid", zap.String("protocol", protocolID))
	}
	return check.errs
}

// checkProtocol returns a non-nil error only for failures that are not rule
// violations (I/O, invalid ids); violations are recorded on check.
func (v *descriptorValidator) checkProtocol(ctx context.Context, check *protocolCheck) error {
	id := check.protocolID

	exists, err := v.protocolRepo.DescriptorExists(ctx, id)
	if err != nil {
		return fmt.Errorf("protocol %s: %w", id, err)
	}
	if !exists {
		check.stop(&domain.ValidationError{ProtocolID: id, Index: -1, Err: domain.ErrDescriptorNotFound})
		return nil
	}

	data, err := v.protocolRepo.ReadDescriptor(ctx, id)
	if err != nil {
		return fmt.Errorf("protocol %s: %w", id, err)
	}

	var parsed any
	if err = json.Unmarshal(data, &parsed); err != nil {
		check.stop(&domain.ValidationError{
			ProtocolID: id, Index: -1, Err: domain.ErrMalformedDescriptor,
			Detail: "invalid JSON: " + err.Error(),
		})
		return nil
	}
	descriptor, ok := parsed.(map[string]any)
	if !ok {
		check.stop(&domain.ValidationError{
			ProtocolID: id, Index: -1, Err: domain.ErrMalformedDescriptor,
			Detail: "config is not an object",
		})
		return nil
	}

	if _, ok = nonEmptyString(descriptor[entity.FieldName]); !ok {
		if check.fail(fieldError(id, entity.FieldName, domain.ErrInvalidField)) {
			return nil
		}
	}

	iconOK := false
	icon, ok := nonEmptyString(descriptor[entity.FieldIcon])
	switch {
	case !ok:
		if check.fail(fieldError(id, entity.FieldIcon, domain.ErrInvalidField)) {
			return nil
		}
	default:
		if _, err = entity.NewIconName(icon); err != nil {
			if check.fail(&domain.ValidationError{ProtocolID: id, Field: entity.FieldIcon, Index: -1, Err: domain.ErrInvalidIcon}) {
				return nil
			}
		} else {
			iconOK = true
		}
	}

	metadata, metadataOK := descriptor[entity.FieldMetadata].(map[string]any)
	if !metadataOK {
		verr := fieldError(id, entity.FieldMetadata, domain.ErrInvalidField)
		verr.Detail = "must be a JSON object"
		if check.fail(verr) {
			return nil
		}
	}

	if iconOK {
		exists, err = v.protocolRepo.IconExists(ctx, id, icon)
		if err != nil {
			return fmt.Errorf("protocol %s: %w", id, err)
		}
		if !exists {
			if check.fail(&domain.ValidationError{
				ProtocolID: id, Field: entity.FieldIcon, Index: -1, Err: domain.ErrIconNotFound, Detail: icon,
			}) {
				return nil
			}
		}
	}

	if !metadataOK {
		return nil
	}

	var entries []metadataRef
	for _, key := range entity.MetadataKeys {
		found, stop := checkMetadataList(check, metadata, key)
		if stop {
			return nil
		}
		entries = append(entries, found...)
	}

	if v.linksEnabled() && check.errs == nil {
		v.checkLinks(ctx, check, entries)
	}
	return nil
}

// metadataRef is a metadata entry that passed the field rules, with its position.
type metadataRef struct {
	key   entity.MetadataKey
	index int
	entry entity.MetadataEntry
}

// checkMetadataList validates one of pt/yt/lp. Absent and null lists are skipped.
func checkMetadataList(check *protocolCheck, metadata map[string]any, key entity.MetadataKey) ([]metadataRef, bool) {
	id := check.protocolID

	raw, present := metadata[string(key)]
	if !present || raw == nil {
		return nil, false
	}

	items, ok := raw.([]any)
	if !ok {
		stop := check.fail(&domain.ValidationError{
			ProtocolID: id, MetadataKey: string(key), Index: -1, Err: domain.ErrMalformedDescriptor,
		})
		return nil, stop
	}

	var valid []metadataRef
	for index, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			if check.fail(&domain.ValidationError{
				ProtocolID: id, MetadataKey: string(key), Index: index, Err: domain.ErrMalformedDescriptor,
				Detail: "entry is not an object",
			}) {
				return nil, true
			}
			continue
		}

		entry, entryOK := entity.MetadataEntry{}, true
		entryFail := func(field string, sentinel error) bool {
			entryOK = false
			return check.fail(&domain.ValidationError{
				ProtocolID: id, MetadataKey: string(key), Field: field, Index: index, Err: sentinel,
			})
		}

		if chainID, ok := fields[entity.FieldChainID].(float64); ok {
			entry.ChainID = chainID
		} else if entryFail(entity.FieldChainID, domain.ErrInvalidField) {
			return nil, true
		}

		address, ok := nonEmptyString(fields[entity.FieldAddress])
		if addr, err := entity.NewAddress(address); ok && err == nil {
			entry.Address = addr
		} else if entryFail(entity.FieldAddress, domain.ErrInvalidAddress) {
			return nil, true
		}

		if description, ok := nonEmptyString(fields[entity.FieldDescription]); ok {
			entry.Description = description
		} else if entryFail(entity.FieldDescription, domain.ErrInvalidField) {
			return nil, true
		}

		if integrationURL, ok := nonEmptyString(fields[entity.FieldIntegrationURL]); ok {
			entry.IntegrationURL = integrationURL
		} else if entryFail(entity.FieldIntegrationURL, domain.ErrInvalidField) {
			return nil, true
		}

		if entryOK {
			valid = append(valid, metadataRef{key: key, index: index, entry: entry})
		}
	}
	return valid, false
}

// checkLinks probes every integration URL, reusing cached results.
func (v *descriptorValidator) checkLinks(ctx context.Context, check *protocolCheck, entries []metadataRef) {
	for _, ref := range entries {
		fail := func(sentinel error, detail string) bool {
			return check.fail(&domain.ValidationError{
				ProtocolID: check.protocolID, MetadataKey: string(ref.key), Field: entity.FieldIntegrationURL,
				Index: ref.index, Err: sentinel, Detail: detail,
			})
		}

		url, err := entity.NewLinkURL(ref.entry.IntegrationURL)
		if err != nil {
			if fail(domain.ErrInvalidField, "not an absolute http(s) url") {
				return
			}
			continue
		}

		status := v.linkStatus(ctx, url)
		v.logger.Debug("Checked integration link",
			zap.String("protocol", check.protocolID),
			zap.String("address", ref.entry.Address.Checksum()),
			zap.Float64("chainId", ref.entry.ChainID),
			zap.String("url", url.String()),
			zap.Bool("reachable", status.Reachable),
		)
		if !status.Reachable && fail(domain.ErrUnreachableLink, status.Reason) {
			return
		}
	}
}

func (v *descriptorValidator) linkStatus(ctx context.Context, url entity.LinkURL) entity.LinkStatus {
	if v.linkCache != nil {
		status, found, err := v.linkCache.GetLinkStatus(ctx, url)
		if err != nil {
			v.logger.Warn("Cache error when getting link status", zap.String("url", url.String()), zap.Error(err))
		}
		if found {
			return status
		}
	}

	status, err := v.linkChecker.CheckLink(ctx, url)
	if err != nil {
		v.logger.Debug("Link check failed", zap.String("url", url.String()), zap.Error(err))
	}

	if v.linkCache != nil {
		if cacheErr := v.linkCache.SetLinkStatus(ctx, status, v.cfg.GetLinkCacheTTL()); cacheErr != nil {
			v.logger.Warn("Failed to cache link status", zap.String("url", url.String()), zap.Error(cacheErr))
		}
	}
	return status
}

func (v *descriptorValidator) linksEnabled() bool {
	return v.cfg.CheckLinks && v.linkChecker != nil
}

// protocolCheck accumulates the violations of one protocol.
type protocolCheck struct {
	protocolID string
	aggregate  bool
	errs       error
}

// fail records a violation and reports whether checking must stop.
func (c *protocolCheck) fail(err *domain.ValidationError) bool {
	c.errs = multierr.Append(c.errs, err)
	return !c.aggregate
}

// stop records a violation after which nothing else can be checked.
func (c *protocolCheck) stop(err *domain.ValidationError) {
	c.errs = multierr.Append(c.errs, err)
}

func fieldError(protocolID, field string, sentinel error) *domain.ValidationError {
	return &domain.ValidationError{ProtocolID: protocolID, Field: field, Index: -1, Err: sentinel}
}

// nonEmptyString reports whether v is a string with non-whitespace content.
func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
