package renametable

// builtinEntries maps the singular model accessors of the legacy client to the
// table-named accessors generated after the schema switched to @@map names.
var builtinEntries = []Entry{
	{Singular: "user", Plural: "users"},
	{Singular: "post", Plural: "posts"},
	{Singular: "booking", Plural: "bookings"},
	{Singular: "service", Plural: "services"},
	{Singular: "teamMember", Plural: "team_members"},
	{Singular: "language", Plural: "languages"},
	{Singular: "customRole", Plural: "custom_roles"},
	{Singular: "serviceRequest", Plural: "service_requests"},
	{Singular: "auditLog", Plural: "audit_logs"},
	{Singular: "contactSubmission", Plural: "contact_submissions"},
	{Singular: "chatMessage", Plural: "chat_messages"},
	{Singular: "expense", Plural: "expenses"},
	{Singular: "invoice", Plural: "invoices"},
	{Singular: "invoiceItem", Plural: "invoice_items"},
	{Singular: "organizationSettings", Plural: "organization_settings"},
	{Singular: "tenantMembership", Plural: "tenant_memberships"},
	{Singular: "permissionTemplate", Plural: "permission_templates"},
	{Singular: "bulkOperation", Plural: "bulk_operations"},
	{Singular: "bulkOperationResult", Plural: "bulk_operation_results"},
	{Singular: "bulkOperationHistory", Plural: "bulk_operation_history"},
	{Singular: "organizationLocalizationSettings", Plural: "org_localization_settings"},
	{Singular: "crowdinIntegration", Plural: "crowdin_integrations"},
	{Singular: "verificationToken", Plural: "verificationtokens"},
	{Singular: "settingChangeDiff", Plural: "setting_change_diffs"},
	{Singular: "auditEvent", Plural: "audit_events"},
	{Singular: "translationKey", Plural: "translation_keys"},
	{Singular: "translationMetrics", Plural: "translation_metrics"},
	{Singular: "userProfile", Plural: "user_profiles"},
	{Singular: "regionalFormat", Plural: "regional_formats"},
	{Singular: "menuCustomization", Plural: "menu_customizations"},
	{Singular: "favoriteSetting", Plural: "favorite_settings"},
	{Singular: "permissionAudit", Plural: "permission_audits"},
	{Singular: "taskTemplate", Plural: "task_templates"},
	{Singular: "requestTask", Plural: "request_tasks"},
	{Singular: "bookingSettings", Plural: "booking_settings"},
	{Singular: "bookingStepConfig", Plural: "booking_step_config"},
	{Singular: "businessHoursConfig", Plural: "business_hours_config"},
	{Singular: "paymentMethodConfig", Plural: "payment_method_config"},
	{Singular: "notificationTemplate", Plural: "notification_templates"},
	{Singular: "serviceRequestComment", Plural: "service_request_comments"},
	{Singular: "notificationSettings", Plural: "notification_settings"},
	{Singular: "sidebarPreferences", Plural: "sidebar_preferences"},
	{Singular: "translationPriority", Plural: "translation_priorities"},
	{Singular: "integrationSettings", Plural: "integration_settings"},
	{Singular: "workflowTemplate", Plural: "workflow_templates"},
	{Singular: "userWorkflow", Plural: "user_workflows"},
	{Singular: "workflowStep", Plural: "workflow_steps"},
	{Singular: "workflowHistory", Plural: "workflow_history"},
	{Singular: "workflowNotification", Plural: "workflow_notifications"},
	{Singular: "userPermission", Plural: "user_permissions"},
	{Singular: "cronTelemetrySettings", Plural: "cron_telemetry_settings"},
}

// BuiltinSource is the Source of the table returned by Builtin.
const BuiltinSource = "builtin"

// Builtin returns the default rename table.
func Builtin() *Table {
	t, err := build(BuiltinSource, builtinEntries)
	if err != nil {
		panic("renametable: invalid builtin table: " + err.Error())
	}
	return t
}
