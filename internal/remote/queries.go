package remote

const (
	getProviderAvailabilityQuery = `
		query GetProviderAvailability($providerId: ID!) {
			getProviderAvailability(providerId: $providerId) {
				dayOfWeek
				timeRanges { startTime endTime }
				breaks { startTime endTime }
				exceptions
			}
		}
	`

	updateProviderAvailabilityMutation = `
		mutation UpdateProviderAvailability($providerId: ID!, $dayOfWeek: DayOfWeek!, $input: AvailabilityInput!) {
			updateProviderAvailability(providerId: $providerId, dayOfWeek: $dayOfWeek, input: $input) {
				dayOfWeek
			}
		}
	`

	updateProviderExceptionsMutation = `
		mutation UpdateProviderExceptions($providerId: ID!, $exceptions: [AvailabilityExceptionInput!]!) {
			updateProviderExceptions(providerId: $providerId, exceptions: $exceptions) {
				providerId
			}
		}
	`

	listProvidersQuery = `
		query ListProviders($tenantId: ID!) {
			listProviders(tenantId: $tenantId) {
				items { id tenantId name email timezone }
			}
		}
	`

	getTenantQuery = `
		query GetTenant($tenantId: ID!) {
			getTenant(id: $tenantId) {
				id
				settings
			}
		}
	`

	updateTenantSettingsMutation = `
		mutation UpdateTenantSettings($tenantId: ID!, $settings: AWSJSON!) {
			updateTenant(id: $tenantId, settings: $settings) {
				id
			}
		}
	`
)
