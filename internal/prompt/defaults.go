package prompt

import "github.com/storygen-hq/storygen/pkg/model"

// defaultTemplates returns the built-in template set, keyed the same way
// Select looks them up. The persona and edge-case templates register
// under generic generation-type keys so any domain can fall back to them.
func defaultTemplates() map[string]Template {
	return map[string]Template{
		"ecommerce_standard": {
			Name:               "E-commerce Standard Test Generation",
			Domain:             model.DomainEcommerce,
			Complexity:         model.ComplexityMedium,
			GenerationType:     model.GenerationStandard,
			SystemPrompt:       systemPromptEcommerce,
			UserPromptTemplate: userPromptStandard,
			ExpectedFormat:     standardOutputFormat,
			QualityCriteria:    ecommerceQualityCriteria,
			TokenEstimate:      1200,
		},
		"finance_standard": {
			Name:               "Finance Standard Test Generation",
			Domain:             model.DomainFinance,
			Complexity:         model.ComplexityMedium,
			GenerationType:     model.GenerationStandard,
			SystemPrompt:       systemPromptFinance,
			UserPromptTemplate: userPromptStandard,
			ExpectedFormat:     standardOutputFormat,
			QualityCriteria:    financeQualityCriteria,
			TokenEstimate:      1300,
		},
		"healthcare_standard": {
			Name:               "Healthcare Standard Test Generation",
			Domain:             model.DomainHealthcare,
			Complexity:         model.ComplexityMedium,
			GenerationType:     model.GenerationStandard,
			SystemPrompt:       systemPromptHealthcare,
			UserPromptTemplate: userPromptStandard,
			ExpectedFormat:     standardOutputFormat,
			QualityCriteria:    healthcareQualityCriteria,
			TokenEstimate:      1400,
		},
		"saas_standard": {
			Name:               "SaaS Standard Test Generation",
			Domain:             model.DomainSaaS,
			Complexity:         model.ComplexityMedium,
			GenerationType:     model.GenerationStandard,
			SystemPrompt:       systemPromptSaaS,
			UserPromptTemplate: userPromptStandard,
			ExpectedFormat:     standardOutputFormat,
			QualityCriteria:    saasQualityCriteria,
			TokenEstimate:      1100,
		},
		"persona_based": {
			Name:               "Persona-based Test Generation",
			Domain:             model.DomainGeneral,
			Complexity:         model.ComplexityMedium,
			GenerationType:     model.GenerationPersona,
			SystemPrompt:       systemPromptPersona,
			UserPromptTemplate: userPromptPersona,
			ExpectedFormat:     personaOutputFormat,
			QualityCriteria:    personaQualityCriteria,
			TokenEstimate:      1500,
		},
		"edge_case_focused": {
			Name:               "Edge Case Focused Test Generation",
			Domain:             model.DomainGeneral,
			Complexity:         model.ComplexityComplex,
			GenerationType:     model.GenerationEdgeCase,
			SystemPrompt:       systemPromptEdgeCase,
			UserPromptTemplate: userPromptEdgeCase,
			ExpectedFormat:     standardOutputFormat,
			QualityCriteria:    edgeCaseQualityCriteria,
			TokenEstimate:      1600,
		},
	}
}

const systemPromptEcommerce = `You are an expert QA engineer specializing in e-commerce testing. Generate comprehensive, realistic test cases that cover:

1. User authentication and account management
2. Product catalog browsing and search
3. Shopping cart functionality
4. Checkout and payment processing
5. Order management and tracking
6. Customer service interactions
7. Mobile responsiveness
8. Security and data protection

Focus on real-world scenarios including edge cases, error conditions, and cross-browser compatibility. Consider different user personas (new customers, returning customers, mobile users) and payment methods. Ensure test cases are specific, executable, and include realistic test data.`

const systemPromptFinance = `You are an expert QA engineer specializing in financial services testing. Generate comprehensive, compliant test cases that cover:

1. Account management and authentication
2. Transaction processing and validation
3. Regulatory compliance (PCI DSS, SOX, etc.)
4. Security and fraud prevention
5. Reporting and audit trails
6. Data privacy and encryption
7. Multi-factor authentication
8. Real-time processing requirements

Emphasize security, accuracy, and compliance. Include test cases for boundary conditions, data validation, and error handling. Consider different user roles (customers, administrators, auditors) and ensure test cases verify regulatory requirements.`

const systemPromptHealthcare = `You are an expert QA engineer specializing in healthcare IT testing. Generate comprehensive, HIPAA-compliant test cases that cover:

1. Patient data management and privacy
2. Electronic health records (EHR) functionality
3. Clinical workflow support
4. Integration with medical devices
5. Prescription and medication management
6. Appointment scheduling and management
7. Insurance and billing processes
8. Audit trails and compliance reporting

Prioritize patient safety, data security, and regulatory compliance (HIPAA, FDA, HL7). Include test cases for data validation, access controls, and integration scenarios. Consider different user roles (patients, doctors, nurses, administrators).`

const systemPromptSaaS = `You are an expert QA engineer specializing in SaaS application testing. Generate comprehensive test cases that cover:

1. User authentication and authorization
2. Multi-tenancy and data isolation
3. API functionality and integration
4. Subscription and billing management
5. Performance and scalability
6. Data backup and recovery
7. Configuration and customization
8. Analytics and reporting

Focus on cloud-native concerns including scalability, security, and multi-tenant architecture. Include test cases for API endpoints, user permissions, and data isolation. Consider different subscription tiers and user roles.`

const systemPromptPersona = `You are an expert QA engineer specializing in persona-based testing. Generate test cases from the perspective of different user personas, ensuring comprehensive coverage of:

1. Role-specific workflows and permissions
2. User experience variations by persona
3. Accessibility requirements
4. Device and platform preferences
5. Business process variations
6. Cross-persona interactions
7. Permission boundaries and security
8. Persona-specific edge cases

Create realistic scenarios that reflect how different users would actually interact with the system. Include test cases for permission validation, workflow variations, and cross-persona collaboration.`

const systemPromptEdgeCase = `You are an expert QA engineer specializing in edge case and boundary testing. Generate comprehensive test cases that cover:

1. Boundary value analysis
2. Error conditions and exception handling
3. Data validation limits
4. Concurrent user scenarios
5. System resource limitations
6. Network and connectivity issues
7. Integration failure scenarios
8. Performance under stress

Focus on scenarios that could break the system or reveal hidden defects. Include test cases for maximum/minimum values, null/empty inputs, special characters, and system limits. Emphasize negative testing and error recovery.`

const userPromptStandard = `Generate comprehensive test cases for the following user story:

**Title:** {{.Title}}

**Description:** {{.Description}}

**Acceptance Criteria:**
{{.AcceptanceCriteria}}

**Domain:** {{.Domain}}
**Complexity:** {{.Complexity}}
{{if .BusinessRules}}
**Business Rules:**
{{range .BusinessRules}}- {{.}}
{{end}}{{end}}{{if .AdditionalContext}}
**Additional Context:**
{{range $key, $value := .AdditionalContext}}- {{$key}}: {{$value}}
{{end}}{{end}}
Generate 5-12 test cases that provide comprehensive coverage including:
1. Happy path scenarios
2. Alternative flows
3. Edge cases and boundary conditions
4. Error scenarios and validation
5. Integration scenarios

Each test case should include:
- Clear, descriptive title
- Detailed test steps
- Expected results
- Test data (realistic and specific)
- Prerequisites/preconditions
- Automation classification (manual, api_automation, ui_automation)

Ensure test cases are specific, executable, and include realistic test data.`

const userPromptPersona = `Generate persona-specific test cases for the following user story:

**Title:** {{.Title}}

**Description:** {{.Description}}

**Acceptance Criteria:**
{{.AcceptanceCriteria}}

**Target Personas:**
{{range .Personas}}- {{.}}
{{end}}
For each persona, generate test cases that reflect their specific:
- Workflow patterns and preferences
- Permission levels and access rights
- Device/platform usage patterns
- Experience level and technical proficiency
- Business objectives and priorities

Include cross-persona scenarios where personas interact or collaborate.

Each test case should include:
- Persona designation
- Role-specific context
- Detailed test steps
- Expected results
- Permission validations
- Realistic test data for that persona type`

const userPromptEdgeCase = `Generate edge case and boundary test cases for the following user story:

**Title:** {{.Title}}

**Description:** {{.Description}}

**Acceptance Criteria:**
{{.AcceptanceCriteria}}

Focus specifically on:
1. Boundary value analysis (min/max values, limits)
2. Invalid input scenarios
3. System constraint testing
4. Concurrent access scenarios
5. Data corruption/recovery scenarios
6. Integration failure points
7. Performance edge cases
8. Security boundary testing

Generate test cases that push the system to its limits and test error handling, recovery mechanisms, and system resilience.

Each test case should include:
- Specific boundary or edge condition being tested
- Detailed steps to reproduce the condition
- Expected error handling or system response
- Recovery/cleanup procedures
- Risk level assessment`

const standardOutputFormat = `{
  "test_cases": [
    {
      "title": "string",
      "description": "string",
      "prerequisites": ["string"],
      "test_steps": [
        {
          "step_number": "integer",
          "action": "string",
          "expected_result": "string",
          "test_data": "object"
        }
      ],
      "expected_final_result": "string",
      "classification": "manual|api_automation|ui_automation",
      "priority": "high|medium|low",
      "test_type": "functional|integration|boundary|negative",
      "estimated_duration": "integer (minutes)",
      "tags": ["string"]
    }
  ],
  "summary": {
    "total_test_cases": "integer",
    "coverage_areas": ["string"],
    "automation_ratio": "float"
  }
}`

const personaOutputFormat = `{
  "persona_test_cases": {
    "persona_name": [
      {
        "title": "string",
        "description": "string",
        "persona": "string",
        "persona_context": "string",
        "prerequisites": ["string"],
        "test_steps": [
          {
            "step_number": "integer",
            "action": "string",
            "expected_result": "string",
            "persona_specific_notes": "string"
          }
        ],
        "permission_validations": ["string"],
        "cross_persona_interactions": ["string"],
        "classification": "manual|api_automation|ui_automation",
        "priority": "high|medium|low"
      }
    ]
  },
  "cross_persona_scenarios": [
    {
      "title": "string",
      "involved_personas": ["string"],
      "scenario_description": "string",
      "test_steps": ["object"]
    }
  ]
}`

var ecommerceQualityCriteria = []string{
	"Test cases cover the complete customer journey from browsing to order completion",
	"Payment processing scenarios include multiple payment methods and error conditions",
	"Security test cases verify data protection and fraud prevention",
	"Mobile responsiveness and cross-browser compatibility are validated",
	"Inventory management and stock validation scenarios are included",
	"Customer account management and authentication flows are comprehensive",
	"Test data includes realistic product information and user data",
}

var financeQualityCriteria = []string{
	"All test cases verify security and compliance requirements",
	"Transaction processing includes validation and audit trail verification",
	"Data encryption and privacy protection scenarios are comprehensive",
	"Error handling and recovery procedures are clearly defined",
	"Regulatory compliance validation is included in relevant test cases",
	"Multi-factor authentication scenarios are thorough",
	"Boundary testing includes financial limits and constraints",
}

var healthcareQualityCriteria = []string{
	"Patient data privacy and HIPAA compliance are verified in all scenarios",
	"Clinical workflow integration is validated with realistic medical scenarios",
	"Access control and permission management is comprehensive",
	"Data integrity and accuracy validation is included",
	"Integration with medical devices and systems is tested",
	"Audit trail and compliance reporting scenarios are complete",
	"Emergency and critical care scenarios are appropriately prioritized",
}

var saasQualityCriteria = []string{
	"Multi-tenancy and data isolation are verified in all scenarios",
	"API functionality includes authentication and rate limiting tests",
	"Subscription and billing scenarios cover all plan types",
	"Performance and scalability concerns are addressed",
	"Integration scenarios cover third-party services and webhooks",
	"User permission and role management is comprehensive",
	"Backup and recovery procedures are validated",
}

var personaQualityCriteria = []string{
	"Each persona has distinct test scenarios reflecting their role",
	"Permission boundaries are validated for each persona type",
	"Cross-persona interactions and collaborations are tested",
	"Workflow variations by persona are clearly documented",
	"Accessibility requirements are addressed for relevant personas",
	"Device and platform preferences are reflected in test scenarios",
	"Business objective alignment is validated for each persona",
}

var edgeCaseQualityCriteria = []string{
	"Boundary value analysis covers minimum and maximum constraints",
	"Error handling and recovery mechanisms are thoroughly tested",
	"Concurrent access and race condition scenarios are included",
	"System resource limitation testing is comprehensive",
	"Data corruption and recovery scenarios are validated",
	"Integration failure points and fallback mechanisms are tested",
	"Performance under stress conditions is evaluated",
}
