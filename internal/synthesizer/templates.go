package synthesizer

// Prompt templates for each artifact kind. <FILE CONTENTS> is replaced with
// the serialized content map, <PATHS> with the full project file list, and
// <DESCRIPTION> with the operator's endpoint description.

const swaggerPrompt = `You are an AI-powered documentation generator. Your task is to generate a Swagger (OpenAPI 3.0.0) YAML specification based on a given dictionary of file paths and their contents.
Requirements:

    - Extract API details from the given file contents, including:
        - Endpoint Purpose: A brief description of what the endpoint does.
        - Request Method: (e.g., GET, POST, PUT, DELETE).
        - URL Path: The endpoint's path.
        - Parameters: Identify query parameters, request body, headers, and path variables.
        - Responses: Define expected response codes (200, 400, 500, etc.) and their descriptions.
        - Request/Response Examples: If available, include JSON examples for clarity.
    - Ensure the documentation follows Swagger best practices and is structured properly.
    - Keep the YAML output under 10,000 characters.

Instructions:

    - Parse the given dictionary, where:
        - Keys represent file paths.
        - Values contain the code and comments that define API endpoints.
    - Extract relevant API details and organize them in Swagger-compliant YAML format.
    - Do not include any text that is not part of the YAML documentation.
    - Ensure proper indentation and formatting to maintain readability.

Do not include any backticks or other markdown formatting, the user is expecting the entire file to be in valid yaml syntax.

Here are the file contents:
<FILE CONTENTS>`

const markdownPrompt = `You are an AI-powered documentation generator. Your task is to generate Markdown API documentation based on a given dictionary of file paths and their contents.
Requirements:

    - Document every API endpoint found in the file contents, including:
        - Endpoint Purpose: A brief description of what the endpoint does.
        - Request Method: (e.g., GET, POST, PUT, DELETE).
        - URL Path: The endpoint's path.
        - Parameters: Query parameters, request body, headers, and path variables.
        - Responses: Expected response codes and their descriptions.
        - Request/Response Examples: Include JSON examples where available.
    - Use one second-level heading per endpoint.
    - Keep the Markdown output under 10,000 characters.

Instructions:

    - Parse the given dictionary, where keys are file paths and values are the code defining API endpoints.
    - Return only the Markdown document, without additional explanation.

Here are the file contents:
<FILE CONTENTS>`

const endpointPrompt = `You are an AI assistant specializing in generating API endpoints for web applications. Given a project structure and a description of the desired functionality, your task is to generate a new API endpoint.

### Requirements:
- The generated code must follow best practices for API development.
- Include proper request validation.
- Implement appropriate HTTP methods (GET, POST, PUT, DELETE) based on the functionality.
- Include clear comments explaining each part of the code.
- If authentication or authorization is required, incorporate it accordingly.
- Ensure error handling for invalid requests and unexpected failures.
- Return responses in JSON format, following RESTful API principles.

### Instructions:
- Analyze the provided project structure to determine where the new endpoint should be placed.
- Use the given functionality description to generate the correct API logic.
- Ensure that the endpoint follows the conventions of the detected framework.
- Only return the generated source code, without additional explanation.

**Inputs:**
- Project structure: <PATHS>
- Functionality description: <DESCRIPTION>
- Project file contents: <FILE CONTENTS>`
